package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auto-loan-contracts/internal/adapter/repository/gormrepo"
	"auto-loan-contracts/internal/domain/contract"
	"auto-loan-contracts/internal/domain/note"
	contractuc "auto-loan-contracts/internal/usecase/contract"
	noteuc "auto-loan-contracts/internal/usecase/note"
	"auto-loan-contracts/internal/usecase/schedule"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2024, 1, 31, 8, 0, 0, 0, time.UTC)

// newTestServer wires the full route table over an in-memory sqlite store.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&contract.Contract{}, &note.Note{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	clock := func() time.Time { return testNow }
	tx := gormrepo.NewGormUoW(db)
	contracts := contractuc.NewUsecase(gormrepo.NewContractRepository(db), tx, nil).WithClock(clock)
	notes := noteuc.NewUsecase(gormrepo.NewNoteRepository(db), tx, schedule.NewCalculator().WithClock(clock), nil).WithClock(clock)

	e := echo.New()
	e.Validator = NewValidator()
	Register(e, NewHandler(sqlDB), NewContractHandler(contracts, nil), NewNoteHandler(notes, nil))
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func do(e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, mustJSON(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
}
