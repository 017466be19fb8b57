package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"lexdesk.app/deedwatch/internal/http/handler"
	"lexdesk.app/deedwatch/internal/http/middleware"
	"lexdesk.app/deedwatch/internal/model"
	"lexdesk.app/deedwatch/internal/reminder"
	"lexdesk.app/deedwatch/internal/service"
)

const adminAPIKey = "test-admin-key"

var _ = Describe("ReminderHandler", func() {
	var (
		router *gin.Engine
		svc    *mockReminderService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockReminderService{}
		h := handler.NewReminderHandler(svc)

		api := router.Group("/api/v1")
		api.Use(middleware.RequireAdminAPIKey(adminAPIKey))
		api.POST("/reminders/run", h.Run)
		api.GET("/deeds/:id/reminders", h.History)
	})

	post := func(body string, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reminders/run", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		if key != "" {
			req.Header.Set("X-Admin-API-Key", key)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("Run", func() {
		It("returns the results with a count", func() {
			var got service.RunRequest
			recipient := "ana@despacho.es"
			svc.runFn = func(_ context.Context, req service.RunRequest) (reminder.RunResult, error) {
				got = req
				return reminder.RunResult{
					RunID:  77,
					DryRun: req.DryRun,
					Results: []reminder.Result{
						{DeedID: 100, Type: model.ReminderTypeModel600, Days: 10, Status: reminder.StatusProcessed, Recipient: &recipient, EmailSent: true, TaskCreated: true},
						{DeedID: 101, Type: model.ReminderTypeAsiento, Days: 7, Status: reminder.StatusSkippedDuplicate},
					},
				}, nil
			}

			w := post(`{"org_id":"42","dryRun":true}`, adminAPIKey)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(got.OrgID).To(HaveValue(Equal(int64(42))))
			Expect(got.DryRun).To(BeTrue())

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["ok"]).To(BeTrue())
			Expect(resp["count"]).To(BeNumerically("==", 2))
			Expect(resp["dryRun"]).To(BeTrue())

			results := resp["results"].([]any)
			first := results[0].(map[string]any)
			Expect(first["deed_id"]).To(Equal("100"))
			Expect(first["type"]).To(Equal("model600"))
			Expect(first["days"]).To(BeNumerically("==", 10))
			Expect(first["status"]).To(Equal("processed"))
			Expect(first["recipient"]).To(Equal("ana@despacho.es"))

			second := results[1].(map[string]any)
			Expect(second["status"]).To(Equal("skipped_duplicate"))
			Expect(second).To(HaveKeyWithValue("recipient", BeNil()))
		})

		It("accepts an empty body", func() {
			called := false
			svc.runFn = func(_ context.Context, req service.RunRequest) (reminder.RunResult, error) {
				called = true
				Expect(req.OrgID).To(BeNil())
				Expect(req.DryRun).To(BeFalse())
				return reminder.RunResult{Results: []reminder.Result{}}, nil
			}

			w := post("", adminAPIKey)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(called).To(BeTrue())
			Expect(w.Body.String()).To(ContainSubstring(`"results":[]`))
		})

		It("accepts a numeric org id", func() {
			svc.runFn = func(_ context.Context, req service.RunRequest) (reminder.RunResult, error) {
				Expect(req.OrgID).To(HaveValue(Equal(int64(7))))
				return reminder.RunResult{}, nil
			}
			Expect(post(`{"org_id":7}`, adminAPIKey).Code).To(Equal(http.StatusOK))
		})

		It("rejects a non-numeric org id", func() {
			w := post(`{"org_id":"acme"}`, adminAPIKey)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring(`"ok":false`))
		})

		It("returns 500 with ok=false when the run fails", func() {
			svc.runFn = func(_ context.Context, _ service.RunRequest) (reminder.RunResult, error) {
				return reminder.RunResult{}, errors.New("scanning deeds: connection refused")
			}

			w := post(`{}`, adminAPIKey)

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["ok"]).To(BeFalse())
			Expect(resp["error"]).To(ContainSubstring("connection refused"))
		})

		It("requires the admin API key", func() {
			Expect(post(`{}`, "").Code).To(Equal(http.StatusUnauthorized))
			Expect(post(`{}`, "wrong").Code).To(Equal(http.StatusUnauthorized))
		})

		It("accepts the key as a bearer token", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/reminders/run", bytes.NewBufferString(`{}`))
			req.Header.Set("Authorization", "Bearer "+adminAPIKey)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("History", func() {
		get := func(path string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("X-Admin-API-Key", adminAPIKey)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		It("lists ledger entries", func() {
			svc.historyFn = func(_ context.Context, deedID int64, orgID *int64) ([]model.ReminderLog, error) {
				Expect(deedID).To(Equal(int64(10)))
				Expect(orgID).To(HaveValue(Equal(int64(1))))
				return []model.ReminderLog{{
					ID:           5,
					DeedID:       10,
					ReminderType: model.ReminderTypeQualification,
					DaysBefore:   5,
					DeadlineDate: time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC),
				}}, nil
			}

			w := get("/api/v1/deeds/10/reminders?org_id=1")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"deadline_date":"2025-04-02"`))
			Expect(w.Body.String()).To(ContainSubstring(`"days_before":5`))
		})

		It("returns 404 for unknown deeds", func() {
			svc.historyFn = func(_ context.Context, _ int64, _ *int64) ([]model.ReminderLog, error) {
				return nil, service.ErrDeedNotFound
			}
			Expect(get("/api/v1/deeds/10/reminders").Code).To(Equal(http.StatusNotFound))
		})

		It("rejects a non-numeric deed id", func() {
			Expect(get("/api/v1/deeds/abc/reminders").Code).To(Equal(http.StatusBadRequest))
		})
	})
})

var _ = Describe("RequireAdminAPIKey", func() {
	It("disables the admin API when no key is configured", func() {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.Use(middleware.RequireAdminAPIKey(""))
		router.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("X-Admin-API-Key", "anything")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
	})
})
