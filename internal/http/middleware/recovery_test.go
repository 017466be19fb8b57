package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"lexdesk.app/deedwatch/internal/http/middleware"
)

var _ = Describe("Recovery", func() {
	var router *gin.Engine

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		router.Use(middleware.Recovery(), middleware.Logger())
		router.GET("/boom", func(c *gin.Context) { panic("template exploded") })
		router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	})

	It("answers a panicking handler with a JSON 500", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(w.Body.String()).To(MatchJSON(`{"ok":false,"error":"internal server error"}`))
	})

	It("lets healthy requests through", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
	})
})
