package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appacquisition "github.com/openfms/backend/internal/application/acquisition"
	appfundcontrol "github.com/openfms/backend/internal/application/fundcontrol"
	appledger "github.com/openfms/backend/internal/application/ledger"
	"github.com/openfms/backend/internal/domain/fundcontrol"
	"github.com/openfms/backend/internal/infrastructure/event"
	"github.com/openfms/backend/internal/infrastructure/persistence"
	"github.com/openfms/backend/internal/infrastructure/persistence/models"
	"github.com/openfms/backend/internal/interfaces/http/dto"
	"github.com/openfms/backend/internal/interfaces/http/middleware"
	"github.com/openfms/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := dto.RegisterValidations(); err != nil {
		panic(err)
	}
}

// newTestRouter wires the full HTTP stack over an in-memory database
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.FundNodeModel{},
		&models.TransactionModel{},
		&models.LineModel{},
		&models.PurchaseRequestModel{},
		&models.SolicitationModel{},
		&models.ContractModel{},
	))

	logger := zap.NewNop()
	fundRepo := persistence.NewGormFundTreeRepository(db)
	txRepo := persistence.NewGormTransactionRepository(db)
	store := persistence.NewGormPostingStore(db)
	prRepo := persistence.NewGormPurchaseRequestRepository(db)
	solRepo := persistence.NewGormSolicitationRepository(db)
	conRepo := persistence.NewGormContractRepository(db)

	validator := fundcontrol.NewValidator()
	posting := appledger.NewPostingService(store, txRepo, fundRepo, logger)
	intake := appledger.NewIntakeService(posting, logger)
	fundService := appfundcontrol.NewService(fundRepo, validator, logger)
	bus := event.NewInMemoryEventBus(logger)
	acqService := appacquisition.NewService(prRepo, solRepo, conRepo, fundRepo,
		validator, posting, bus, nil, logger)

	engine := gin.New()
	engine.Use(middleware.RequestID())

	router.NewRouter(engine).
		Register(NewFundControlHandler(fundService)).
		Register(NewLedgerHandler(posting, intake)).
		Register(NewAcquisitionHandler(acqService)).
		Setup()

	return engine
}

// envelope mirrors the response wrapper for test decoding
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total    int64 `json:"total"`
		Page     int   `json:"page"`
		PageSize int   `json:"page_size"`
	} `json:"meta"`
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User", "jdoe")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	require.NotNil(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func installTestTree(t *testing.T, engine *gin.Engine) {
	t.Helper()

	w, _ := doRequest(t, engine, http.MethodPut, "/api/v1/funds/tree", map[string]any{
		"name":            "O&M Appropriation",
		"code":            "96X3123",
		"level":           "APPROPRIATION",
		"total_authority": "10000000",
		"children": []map[string]any{
			{
				"name":            "District Allocation",
				"code":            "B2000",
				"level":           "ALLOCATION",
				"total_authority": "2000000",
				"children": []map[string]any{
					{
						"name":            "Engineering Allotment",
						"code":            "B2100",
						"level":           "ALLOTMENT",
						"total_authority": "500000",
					},
				},
			},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
}
