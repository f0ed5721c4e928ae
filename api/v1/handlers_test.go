package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/RobotArena/api/middleware"
	"github.com/thesrcielos/RobotArena/internal/apperrors"
	"github.com/thesrcielos/RobotArena/internal/game"
	"github.com/thesrcielos/RobotArena/internal/metrics"
	"github.com/thesrcielos/RobotArena/internal/stats"
	"github.com/thesrcielos/RobotArena/internal/user"
)

const testSecret = "handler-secret"

type fixture struct {
	echo     *echo.Echo
	reader   *stats.MockReader
	store    *stats.MockStore
	users    *user.MockUserRepository
	games    *game.MockGameRepository
	notifier *game.MockStatsNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		reader:   &stats.MockReader{},
		users:    &user.MockUserRepository{},
		games:    &game.MockGameRepository{},
		notifier: &game.MockStatsNotifier{},
	}
	f.store = &stats.MockStore{Reader: f.reader}
	m := metrics.NewService(prometheus.NewRegistry())

	StatsService = stats.NewService(f.store, m)
	UserService = user.NewUserService(f.users, testSecret, 1000)
	GameService = game.NewGameService(f.games, f.users, f.notifier, m)

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	api := e.Group("/api/v1")
	RegisterUserRoutes(api.Group("/users"))
	games := api.Group("/games")
	games.Use(middleware.SetupJWTMiddleware(testSecret))
	RegisterGameRoutes(games)
	f.echo = e
	return f
}

func (f *fixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestGetUserStatsHandler_OK(t *testing.T) {
	f := newFixture(t)
	f.store.On("ReadSnapshot", mock.Anything).Return(nil)
	f.reader.On("FetchUser", mock.Anything, uint(1)).Return(&user.User{ID: 1, OverallRating: 1500, HighestRating: 1500}, nil)
	f.reader.On("FetchAttackGames", mock.Anything, uint(1)).Return([]game.Game{
		{AttackID: 1, AttackScore: 50, DamageDone: 10, RobotsDestroyed: 2, EmpsUsed: 1, IsAttackerAlive: true},
	}, nil)
	f.reader.On("FetchDefenseGames", mock.Anything, uint(1)).Return([]game.Game{}, nil)
	f.reader.On("FetchAllUsers", mock.Anything).Return([]user.User{{ID: 1}}, nil)

	rec := f.do(http.MethodGet, "/api/v1/users/stats/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 13)
	assert.Equal(t, 50, body["highest_attack_score"])
	assert.Equal(t, 10, body["total_damage_attack"])
	assert.Equal(t, 2, body["no_of_robots_killed"])
	assert.Equal(t, 1, body["no_of_emps_used"])
	assert.Equal(t, 0, body["no_of_attackers_suicided"])
	assert.Equal(t, 1, body["no_of_attacks"])
	assert.Equal(t, 0, body["no_of_defenses"])
	assert.Equal(t, 1, body["position_in_leaderboard"])
	assert.Equal(t, 1500, body["rating"])
}

func TestGetUserStatsHandler_BadID(t *testing.T) {
	f := newFixture(t)

	for _, id := range []string{"abc", "0", "-3"} {
		rec := f.do(http.MethodGet, "/api/v1/users/stats/"+id, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
	}
	f.store.AssertNotCalled(t, "ReadSnapshot", mock.Anything)
}

func TestGetUserStatsHandler_NotFound(t *testing.T) {
	f := newFixture(t)
	f.store.On("ReadSnapshot", mock.Anything).Return(nil)
	f.reader.On("FetchUser", mock.Anything, uint(404)).
		Return(nil, apperrors.NewStorageError("user", "FetchUser", apperrors.ErrNotFound))

	rec := f.do(http.MethodGet, "/api/v1/users/stats/404", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", errorBody(t, rec))
}

func TestGetUserStatsHandler_StorageError(t *testing.T) {
	f := newFixture(t)
	f.store.On("ReadSnapshot", mock.Anything).Return(nil)
	f.reader.On("FetchUser", mock.Anything, uint(2)).Return(&user.User{ID: 2}, nil)
	f.reader.On("FetchAttackGames", mock.Anything, uint(2)).
		Return(nil, apperrors.NewStorageError("game", "FetchAttackGames", errors.New("password=hunter2 connection refused")))

	rec := f.do(http.MethodGet, "/api/v1/users/stats/2", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", errorBody(t, rec))
}

func TestSignupHandler_Validation(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/users/signup", `{"username":"bob","password":"1"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/api/v1/users/signup", `{not json`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupHandler_Duplicate(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetUserByUsername", mock.Anything, "bob").Return(&user.User{ID: 3, Username: "bob"}, nil)

	rec := f.do(http.MethodPost, "/api/v1/users/signup", `{"username":"bob","password":"secret1"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "user already exists", errorBody(t, rec))
}

func TestLoginHandler_UnknownUser(t *testing.T) {
	f := newFixture(t)
	f.users.On("GetUserByUsername", mock.Anything, "ghost").
		Return(nil, apperrors.NewStorageError("user", "GetUserByUsername", apperrors.ErrNotFound))

	rec := f.do(http.MethodPost, "/api/v1/users/login", `{"username":"ghost","password":"secret1"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRecordGameHandler(t *testing.T) {
	f := newFixture(t)
	token, err := user.GenerateJWT(1, testSecret)
	require.NoError(t, err)

	f.users.On("GetUser", mock.Anything, mock.Anything).Return(&user.User{}, nil)
	f.games.On("SaveGame", mock.Anything, mock.AnythingOfType("*game.Game")).
		Run(func(args mock.Arguments) { args.Get(1).(*game.Game).ID = 21 }).
		Return(nil)
	f.notifier.On("PublishStatsUpdated", mock.Anything, []uint{1, 2}).Return(nil)

	body := `{"attack_id":1,"defend_id":2,"attack_score":50,"defend_score":10,"damage_done":10,"robots_destroyed":2,"emps_used":1,"is_attacker_alive":true}`
	rec := f.do(http.MethodPost, "/api/v1/games", body, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Game game.Game `json:"game"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(21), resp.Game.ID)
	assert.Equal(t, 50, resp.Game.AttackScore)
	assert.True(t, resp.Game.IsAttackerAlive)
	f.notifier.AssertExpectations(t)
}

func TestRecordGameHandler_RequiresToken(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/games", `{"attack_id":1,"defend_id":2}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing or malformed jwt", errorBody(t, rec))

	rec = f.do(http.MethodPost, "/api/v1/games", `{"attack_id":1,"defend_id":2}`, "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	f.games.AssertNotCalled(t, "SaveGame", mock.Anything, mock.Anything)
}

func TestRecordGameHandler_CallerNotInMatch(t *testing.T) {
	f := newFixture(t)
	token, err := user.GenerateJWT(5, testSecret)
	require.NoError(t, err)

	body := `{"attack_id":1,"defend_id":2,"attack_score":9999,"damage_done":9999}`
	rec := f.do(http.MethodPost, "/api/v1/games", body, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "only a player in the match can record it", errorBody(t, rec))
	f.games.AssertNotCalled(t, "SaveGame", mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "PublishStatsUpdated", mock.Anything, mock.Anything)
}

func TestRecordGameHandler_Invalid(t *testing.T) {
	f := newFixture(t)
	token, err := user.GenerateJWT(1, testSecret)
	require.NoError(t, err)

	rec := f.do(http.MethodPost, "/api/v1/games", `{"attack_id":1,"defend_id":1}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "a player cannot attack themselves", errorBody(t, rec))
}

