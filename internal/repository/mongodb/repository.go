package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Azahir21/track-pendapatan-bot/internal/domain/models"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("not found")

const (
	managersCollection  = "managers"
	employeesCollection = "employees"
	incomeCollection    = "income_records"
	snapshotsCollection = "report_snapshots"
)

// Repository defines the interface for business data storage.
type Repository interface {
	ListManagers(ctx context.Context) ([]models.Manager, error)
	FindManagerByPhone(ctx context.Context, phone string) (models.Manager, error)
	ListEmployees(ctx context.Context, managerID string) ([]models.Employee, error)
	FindEmployeeByPhone(ctx context.Context, phone string) (models.Employee, error)
	ListIncomeEntries(ctx context.Context, employeeID string, limit int) ([]models.IncomeRecord, error)
	SaveIncomeRecord(ctx context.Context, record models.IncomeRecord) error
	SaveReportSnapshot(ctx context.Context, snapshot models.ReportSnapshot) error
	Close(ctx context.Context) error
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
	logger *zap.Logger
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
		logger: logger.Named("repo.mongo"),
	}, nil
}

// ListManagers returns every registered manager.
func (r *MongoDBRepository) ListManagers(ctx context.Context) ([]models.Manager, error) {
	cursor, err := r.collection(managersCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find managers: %w", err)
	}
	defer cursor.Close(ctx)

	var managers []models.Manager
	for cursor.Next(ctx) {
		var doc managerDoc
		if err := cursor.Decode(&doc); err != nil {
			r.logger.Debug("skipping unreadable manager document", zap.Error(err))
			continue
		}
		managers = append(managers, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read managers: %w", err)
	}
	return managers, nil
}

// FindManagerByPhone resolves a manager by WhatsApp number. Returns
// ErrNotFound when the number is not registered.
func (r *MongoDBRepository) FindManagerByPhone(ctx context.Context, phone string) (models.Manager, error) {
	var doc managerDoc
	err := r.collection(managersCollection).FindOne(ctx, bson.M{"phone": phone}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Manager{}, ErrNotFound
	}
	if err != nil {
		return models.Manager{}, fmt.Errorf("failed to find manager by phone: %w", err)
	}
	return doc.toModel(), nil
}

// ListEmployees returns the employees tracked for a manager. An unknown
// manager yields an empty slice.
func (r *MongoDBRepository) ListEmployees(ctx context.Context, managerID string) ([]models.Employee, error) {
	cursor, err := r.collection(employeesCollection).Find(ctx, bson.M{"manager_id": managerID})
	if err != nil {
		return nil, fmt.Errorf("failed to find employees: %w", err)
	}
	defer cursor.Close(ctx)

	var employees []models.Employee
	for cursor.Next(ctx) {
		var doc employeeDoc
		if err := cursor.Decode(&doc); err != nil {
			r.logger.Debug("skipping unreadable employee document", zap.Error(err))
			continue
		}
		employees = append(employees, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}
	return employees, nil
}

// FindEmployeeByPhone resolves an employee by WhatsApp number. Returns
// ErrNotFound when the number is not registered.
func (r *MongoDBRepository) FindEmployeeByPhone(ctx context.Context, phone string) (models.Employee, error) {
	var doc employeeDoc
	err := r.collection(employeesCollection).FindOne(ctx, bson.M{"phone": phone}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Employee{}, ErrNotFound
	}
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to find employee by phone: %w", err)
	}
	return doc.toModel(), nil
}

// ListIncomeEntries returns up to limit income entries for the employee,
// most recent first. Entries whose stored amount cannot be read are skipped.
func (r *MongoDBRepository) ListIncomeEntries(ctx context.Context, employeeID string, limit int) ([]models.IncomeRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection(incomeCollection).Find(ctx, bson.M{"employee_id": employeeID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find income entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.IncomeRecord
	for cursor.Next(ctx) {
		var doc incomeDoc
		if err := cursor.Decode(&doc); err != nil {
			r.logger.Debug("skipping unreadable income document", zap.Error(err))
			continue
		}
		entry, err := doc.toModel()
		if err != nil {
			r.logger.Debug("skipping income document with bad amount",
				zap.String("employee_id", doc.EmployeeID), zap.Error(err))
			continue
		}
		entries = append(entries, entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read income entries: %w", err)
	}
	return entries, nil
}

// SaveIncomeRecord stores one income entry, replacing any existing entry for
// the same employee and calendar day.
func (r *MongoDBRepository) SaveIncomeRecord(ctx context.Context, record models.IncomeRecord) error {
	amount, err := decimalToMongo(record.Amount)
	if err != nil {
		return fmt.Errorf("failed to encode amount: %w", err)
	}

	day := startOfDay(record.Date)
	filter := bson.M{"employee_id": record.EmployeeID, "date": day}
	update := bson.M{"$set": incomeDoc{
		EmployeeID: record.EmployeeID,
		Date:       day,
		Amount:     amount,
		Notes:      record.Notes,
	}}

	_, err = r.collection(incomeCollection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert income record: %w", err)
	}
	return nil
}

// SaveReportSnapshot stores a delivered-report snapshot, assigning an ID when
// the caller left it empty.
func (r *MongoDBRepository) SaveReportSnapshot(ctx context.Context, snapshot models.ReportSnapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}

	total, err := decimalToMongo(snapshot.TotalIncome)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot total: %w", err)
	}

	doc := snapshotDoc{
		ID:           snapshot.ID,
		Kind:         string(snapshot.Kind),
		ManagerID:    snapshot.ManagerID,
		PeriodLabel:  snapshot.PeriodLabel,
		Start:        snapshot.Start,
		End:          snapshot.End,
		TotalIncome:  total,
		TotalEntries: snapshot.TotalEntries,
		CreatedAt:    snapshot.CreatedAt,
	}

	if _, err := r.collection(snapshotsCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert report snapshot: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

type managerDoc struct {
	ID    string `bson:"_id"`
	Name  string `bson:"name"`
	Phone string `bson:"phone"`
}

func (d managerDoc) toModel() models.Manager {
	return models.Manager{ID: d.ID, Name: d.Name, Phone: d.Phone}
}

type employeeDoc struct {
	ID        string `bson:"_id"`
	ManagerID string `bson:"manager_id"`
	Name      string `bson:"name"`
	Phone     string `bson:"phone"`
}

func (d employeeDoc) toModel() models.Employee {
	return models.Employee{ID: d.ID, ManagerID: d.ManagerID, Name: d.Name, Phone: d.Phone}
}

type incomeDoc struct {
	EmployeeID string               `bson:"employee_id"`
	Date       time.Time            `bson:"date"`
	Amount     primitive.Decimal128 `bson:"amount"`
	Notes      string               `bson:"notes,omitempty"`
}

func (d incomeDoc) toModel() (models.IncomeRecord, error) {
	amount, err := decimal.NewFromString(d.Amount.String())
	if err != nil {
		return models.IncomeRecord{}, fmt.Errorf("failed to decode amount: %w", err)
	}
	return models.IncomeRecord{
		EmployeeID: d.EmployeeID,
		Date:       d.Date,
		Amount:     amount,
		Notes:      d.Notes,
	}, nil
}

type snapshotDoc struct {
	ID           string               `bson:"_id"`
	Kind         string               `bson:"kind"`
	ManagerID    string               `bson:"manager_id"`
	PeriodLabel  string               `bson:"period_label"`
	Start        time.Time            `bson:"start"`
	End          time.Time            `bson:"end"`
	TotalIncome  primitive.Decimal128 `bson:"total_income"`
	TotalEntries int                  `bson:"total_entries"`
	CreatedAt    time.Time            `bson:"created_at"`
}

func decimalToMongo(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
