package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yildizm/sentimoji/internal/ai"
	"github.com/yildizm/sentimoji/internal/formatter"
	"github.com/yildizm/sentimoji/internal/logger"
	"github.com/yildizm/sentimoji/internal/sentiment"
)

// Handler serves the analyzer form and its JSON API over one session
type Handler struct {
	client  *sentiment.Client
	session *sentiment.Session
	log     *logger.Logger
}

func NewHandler(client *sentiment.Client, session *sentiment.Session, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{client: client, session: session, log: log.WithComponent("web")}
}

type AnalyzeRequest struct {
	Text string `json:"text"`
}

type StateResponse struct {
	Phase  string                    `json:"phase"`
	Input  string                    `json:"input"`
	Error  string                    `json:"error,omitempty"`
	Result *formatter.AnalysisOutput `json:"result,omitempty"`
}

type HealthResponse struct {
	Status     string `json:"status"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	Credential bool   `json:"credential"`
}

// Index renders the form with the current session state
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, pageTemplate, newPageData(h.session.State()))
}

// Analyze handles the form post and renders the resulting page. The
// analysis is detached from request cancellation: the session outlives the
// connection and the result always lands in the shared state.
func (h *Handler) Analyze(c *gin.Context) {
	text := c.PostForm("text")

	state, err := h.session.Submit(context.WithoutCancel(c.Request.Context()), text)
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
		h.log.Debug("form analysis failed", logger.F("status", status), logger.Error(err))
	}
	c.HTML(status, pageTemplate, newPageData(state))
}

// Legend returns the rating scale
func (h *Handler) Legend(c *gin.Context) {
	c.JSON(http.StatusOK, formatter.LegendOutput())
}

// State returns the current session state
func (h *Handler) State(c *gin.Context) {
	c.JSON(http.StatusOK, toStateResponse(h.session.State()))
}

// APIAnalyze classifies the JSON body's text
func (h *Handler) APIAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	state, err := h.session.Submit(context.WithoutCancel(c.Request.Context()), req.Text)
	if err != nil {
		status := statusFor(err)
		msg := state.Error
		if errors.Is(err, sentiment.ErrInFlight) || errors.Is(err, sentiment.ErrClosed) {
			msg = err.Error()
		}
		h.log.Debug("api analysis failed", logger.F("status", status), logger.Error(err))
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, formatter.NewAnalysisOutput(state.Outcome))
}

// Health reports whether the classifier is configured
func (h *Handler) Health(c *gin.Context) {
	res := HealthResponse{
		Status:     "ok",
		Provider:   h.client.Provider(),
		Model:      h.client.Model(),
		Credential: h.client.Ready() == nil,
	}
	if !res.Credential {
		res.Status = "degraded"
	}
	c.JSON(http.StatusOK, res)
}

func toStateResponse(state sentiment.State) StateResponse {
	return StateResponse{
		Phase:  state.Phase.String(),
		Input:  state.Input,
		Error:  state.Error,
		Result: formatter.NewAnalysisOutput(state.Outcome),
	}
}

// statusFor maps an analysis error to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, sentiment.ErrInFlight):
		return http.StatusConflict
	case errors.Is(err, sentiment.ErrClosed):
		return http.StatusServiceUnavailable
	case ai.IsValidationError(err):
		return http.StatusBadRequest
	case ai.IsConfigurationError(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
