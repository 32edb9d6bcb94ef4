package whatsapp

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Azahir21/track-pendapatan-bot/internal/config"
	"github.com/Azahir21/track-pendapatan-bot/internal/domain/models"
	client "github.com/Azahir21/track-pendapatan-bot/pkg/clients/whatsapp"
)

type fakeClient struct {
	err error

	mu   sync.Mutex
	sent []client.SendTextMessageRequest
}

func (f *fakeClient) SendTextMessage(_ context.Context, req client.SendTextMessageRequest) (*client.SendTextMessageResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, req)
	return &client.SendTextMessageResponse{}, nil
}

type fakeCommands struct {
	reply string
	err   error

	froms []string
	texts []string
}

func (f *fakeCommands) HandleText(_ context.Context, from, text string) (string, error) {
	f.froms = append(f.froms, from)
	f.texts = append(f.texts, text)
	return f.reply, f.err
}

func newTestService(apiClient *fakeClient, commands *fakeCommands) *MetaWhatsAppService {
	cfg := config.WhatsAppConfig{VerifyToken: "secret-token"}
	return NewMetaWhatsAppService(cfg, apiClient, commands, zap.NewNop())
}

func textPayload(id, from, body string) models.WebhookPayload {
	return models.WebhookPayload{
		Object: "whatsapp_business_account",
		Entry: []models.WebhookEntry{{
			ID: "entry-1",
			Changes: []models.WebhookChange{{
				Field: "messages",
				Value: models.WebhookValue{
					Messages: []models.InboundMessage{{
						From: from, ID: id, Type: "text",
						Text: &models.TextContent{Body: body},
					}},
				},
			}},
		}},
	}
}

func TestVerifyWebhookToken(t *testing.T) {
	svc := newTestService(&fakeClient{}, &fakeCommands{})

	challenge, err := svc.VerifyWebhookToken("subscribe", "secret-token", "challenge-123")
	assert.NoError(t, err)
	assert.Equal(t, "challenge-123", challenge)

	_, err = svc.VerifyWebhookToken("SUBSCRIBE", "secret-token", "challenge-123")
	assert.NoError(t, err)

	_, err = svc.VerifyWebhookToken("subscribe", "wrong", "challenge-123")
	assert.Error(t, err)

	_, err = svc.VerifyWebhookToken("", "secret-token", "challenge-123")
	assert.Error(t, err)

	_, err = svc.VerifyWebhookToken("unsubscribe", "secret-token", "challenge-123")
	assert.Error(t, err)
}

func TestHandleWebhook_DispatchesAndReplies(t *testing.T) {
	apiClient := &fakeClient{}
	commands := &fakeCommands{reply: "Income recorded."}
	svc := newTestService(apiClient, commands)

	err := svc.HandleWebhook(context.Background(), textPayload("wamid.1", "6281200001111", "/income 50000"))
	assert.NoError(t, err)

	require.Len(t, commands.texts, 1)
	assert.Equal(t, "6281200001111", commands.froms[0])
	assert.Equal(t, "/income 50000", commands.texts[0])

	require.Len(t, apiClient.sent, 1)
	assert.Equal(t, "6281200001111", apiClient.sent[0].To)
	assert.Equal(t, "Income recorded.", apiClient.sent[0].Body)
}

func TestHandleWebhook_StatusOnlyPayloadIsIgnored(t *testing.T) {
	apiClient := &fakeClient{}
	commands := &fakeCommands{reply: "nope"}
	svc := newTestService(apiClient, commands)

	payload := models.WebhookPayload{
		Entry: []models.WebhookEntry{{
			Changes: []models.WebhookChange{{
				Value: models.WebhookValue{
					Statuses: []models.MessageStatus{{ID: "wamid.1", Status: "delivered"}},
				},
			}},
		}},
	}

	assert.NoError(t, svc.HandleWebhook(context.Background(), payload))
	assert.Empty(t, commands.texts)
	assert.Empty(t, apiClient.sent)
}

func TestHandleWebhook_RedeliveredMessageHandledOnce(t *testing.T) {
	apiClient := &fakeClient{}
	commands := &fakeCommands{reply: "Income recorded."}
	svc := newTestService(apiClient, commands)

	payload := textPayload("wamid.dup", "6281200001111", "/income 50000")
	assert.NoError(t, svc.HandleWebhook(context.Background(), payload))
	assert.NoError(t, svc.HandleWebhook(context.Background(), payload))

	assert.Len(t, commands.texts, 1)
	assert.Len(t, apiClient.sent, 1)
}

func TestHandleWebhook_CommandErrorSurfaces(t *testing.T) {
	apiClient := &fakeClient{}
	commands := &fakeCommands{err: errors.New("store offline")}
	svc := newTestService(apiClient, commands)

	err := svc.HandleWebhook(context.Background(), textPayload("wamid.2", "6281200001111", "/report"))
	assert.Error(t, err)
	assert.Empty(t, apiClient.sent)
}

func TestHandleWebhook_FailedCommandRetriedOnRedelivery(t *testing.T) {
	apiClient := &fakeClient{}
	commands := &fakeCommands{reply: "Income recorded.", err: errors.New("store offline")}
	svc := newTestService(apiClient, commands)

	payload := textPayload("wamid.retry", "6281200001111", "/income 50000")
	assert.Error(t, svc.HandleWebhook(context.Background(), payload))
	assert.Empty(t, apiClient.sent)

	commands.err = nil
	assert.NoError(t, svc.HandleWebhook(context.Background(), payload))

	assert.Len(t, commands.texts, 2)
	require.Len(t, apiClient.sent, 1)
	assert.Equal(t, "Income recorded.", apiClient.sent[0].Body)
}

func TestHandleWebhook_FailedSendRetriedOnRedelivery(t *testing.T) {
	apiClient := &fakeClient{err: errors.New("graph api unavailable")}
	commands := &fakeCommands{reply: "Income recorded."}
	svc := newTestService(apiClient, commands)

	payload := textPayload("wamid.send-retry", "6281200001111", "/income 50000")
	assert.Error(t, svc.HandleWebhook(context.Background(), payload))

	apiClient.err = nil
	assert.NoError(t, svc.HandleWebhook(context.Background(), payload))

	require.Len(t, apiClient.sent, 1)
	assert.Equal(t, "Income recorded.", apiClient.sent[0].Body)
}

func TestHandleWebhook_EmptyReplySendsNothing(t *testing.T) {
	apiClient := &fakeClient{}
	commands := &fakeCommands{reply: ""}
	svc := newTestService(apiClient, commands)

	assert.NoError(t, svc.HandleWebhook(context.Background(), textPayload("wamid.3", "6281200001111", "/report")))
	assert.Empty(t, apiClient.sent)
}

func TestSendOutbound(t *testing.T) {
	apiClient := &fakeClient{}
	svc := newTestService(apiClient, &fakeCommands{})

	err := svc.SendOutbound(context.Background(), models.OutboundMessageRequest{
		To:      "6281200002222",
		Message: "Weekly report below.",
	})
	assert.NoError(t, err)

	require.Len(t, apiClient.sent, 1)
	assert.Equal(t, "6281200002222", apiClient.sent[0].To)
	assert.Equal(t, "Weekly report below.", apiClient.sent[0].Body)
}
