package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gachabot/application"
	"gachabot/domain/entities"
	"gachabot/domain/interfaces"
	"gachabot/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// stubUnitOfWork serves only the item repository
type stubUnitOfWork struct {
	items *testhelpers.MockItemRepository
}

func (u *stubUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *stubUnitOfWork) Commit() error                   { return nil }
func (u *stubUnitOfWork) Rollback() error                 { return nil }
func (u *stubUnitOfWork) ItemRepository() interfaces.ItemRepository {
	return u.items
}
func (u *stubUnitOfWork) PityRepository() interfaces.PityRepository             { return nil }
func (u *stubUnitOfWork) TokenRepository() interfaces.TokenRepository           { return nil }
func (u *stubUnitOfWork) CollectionRepository() interfaces.CollectionRepository { return nil }
func (u *stubUnitOfWork) ExchangeRepository() interfaces.ExchangeRepository     { return nil }
func (u *stubUnitOfWork) GuildConfigRepository() interfaces.GuildConfigRepository {
	return nil
}
func (u *stubUnitOfWork) EventBus() interfaces.EventPublisher { return nil }

type stubFactory struct {
	uow     *stubUnitOfWork
	guildID int64
}

func (f *stubFactory) CreateForGuild(guildID int64) application.UnitOfWork {
	f.guildID = guildID
	return f.uow
}

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) DebugResponse {
	t.Helper()
	var resp DebugResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestOpsRouter_Health(t *testing.T) {
	t.Parallel()

	handler := NewOpsRouter(OpsDependencies{})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestOpsRouter_Guilds(t *testing.T) {
	t.Parallel()

	handler := NewOpsRouter(OpsDependencies{
		Guilds: func() []GuildInfo { return []GuildInfo{{ID: "1", Name: "Test Guild"}} },
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/guilds", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, []interface{}{map[string]interface{}{"id": "1", "name": "Test Guild"}}, resp.Data)
}

func TestOpsRouter_Pool(t *testing.T) {
	t.Parallel()

	items := new(testhelpers.MockItemRepository)
	items.On("GetPool", mock.Anything).Return([]*entities.Item{
		{Name: "Joker", Weight: 1, Rarity: entities.RaritySSR, IsPromotional: true},
		{Name: "Pebble", Weight: 3, Rarity: entities.RarityR},
	}, nil)
	factory := &stubFactory{uow: &stubUnitOfWork{items: items}}

	handler := NewOpsRouter(OpsDependencies{UnitOfWorkFactory: factory})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/guilds/777/pool", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(777), factory.guildID)

	var resp struct {
		Success bool        `json:"success"`
		Data    []PoolEntry `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, PoolEntry{Name: "Joker", Rarity: "SSR", Weight: 1, Percent: "25.00", Promotional: true}, resp.Data[0])
	assert.Equal(t, "75.00", resp.Data[1].Percent)
	items.AssertExpectations(t)
}

func TestOpsRouter_PoolErrors(t *testing.T) {
	t.Parallel()

	items := new(testhelpers.MockItemRepository)
	items.On("GetPool", mock.Anything).Return(nil, errors.New("db down"))
	handler := NewOpsRouter(OpsDependencies{UnitOfWorkFactory: &stubFactory{uow: &stubUnitOfWork{items: items}}})

	tests := []struct {
		name string
		path string
		code int
	}{
		{"bad guild id", "/debug/guilds/abc/pool", http.StatusBadRequest},
		{"repository failure", "/debug/guilds/1/pool", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.code, rec.Code, tt.name)
		assert.False(t, decodeResponse(t, rec).Success, tt.name)
	}
}

func TestOpsRouter_Command(t *testing.T) {
	t.Parallel()

	clock := &fixedClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	gate := application.NewConfirmationGate(clock, 30*time.Second)
	gate.Request(1, 10, application.KindResetItems, "")
	gate.Request(1, 11, application.KindResetTokens, "")
	handler := NewOpsRouter(OpsDependencies{Confirmations: gate})

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/debug/command", bytes.NewBufferString(body)))
		return rec
	}

	rec := post(`{"action":"pending-confirmations"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"pending": float64(2)}, decodeResponse(t, rec).Data)

	clock.now = clock.now.Add(time.Minute)
	rec = post(`{"action":"sweep-confirmations"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Removed 2 expired confirmation(s)", decodeResponse(t, rec).Message)
	assert.Equal(t, 0, gate.PendingCount())

	assert.Equal(t, http.StatusBadRequest, post(`{"action":"explode"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`not json`).Code)
}
