package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/Veraticus/easy-style/internal/account"
	"github.com/Veraticus/easy-style/internal/history"
	"github.com/Veraticus/easy-style/internal/model"
	"github.com/Veraticus/easy-style/internal/purchase"
	"github.com/Veraticus/easy-style/internal/styling"
)

// Stylist runs the AI styling workflow.
type Stylist interface {
	ProposeFollowUpQuestion(ctx context.Context, prompt string) (model.FollowUpQuestion, error)
	ExecuteStyleGeneration(ctx context.Context, photo model.Image, prompt string, opts ...styling.RunOption) (*model.StyleResult, error)
}

// Accounts handles signup, login and token checks.
type Accounts interface {
	Authenticator
	Signup(ctx context.Context, in account.SignupInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

// Histories manages saved results.
type Histories interface {
	Save(ctx context.Context, who account.Principal, prompt string, original model.Image, result model.StyleResult) (*model.StyleHistoryItem, error)
	List(ctx context.Context, who account.Principal) ([]model.StyleHistoryItem, error)
	Get(ctx context.Context, who account.Principal, id string) (*model.StyleHistoryItem, error)
	Share(ctx context.Context, who account.Principal, id string) (*history.Shared, error)
}

// Purchases manages purchase requests.
type Purchases interface {
	Create(ctx context.Context, who account.Principal, products []model.Product) (*model.PurchaseRequest, error)
	List(ctx context.Context, who account.Principal) (*purchase.Overview, error)
	Complete(ctx context.Context, who account.Principal, id string) (*model.PurchaseRequest, error)
}

// Deps are the services the handlers call.
type Deps struct {
	Stylist   Stylist
	Accounts  Accounts
	History   Histories
	Purchases Purchases
	Logger    *slog.Logger
	Version   string
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	stylist   Stylist
	accounts  Accounts
	history   Histories
	purchases Purchases
	logger    *slog.Logger
	sessions  map[string]*styling.Session
	version   string
	mu        sync.Mutex
}

// NewHandler creates a new HTTP handler.
func NewHandler(deps Deps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		stylist:   deps.Stylist,
		accounts:  deps.Accounts,
		history:   deps.History,
		purchases: deps.Purchases,
		logger:    logger,
		sessions:  make(map[string]*styling.Session),
		version:   deps.Version,
	}
}

// session returns the styling session of one user, creating it on first use.
func (h *Handler) session(email string) *styling.Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.sessions[email]
	if !ok {
		s = styling.NewSession()
		h.sessions[email] = s
	}
	return s
}

// HealthCheck returns the health status of the API.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "easy-style",
		"version": h.version,
	})
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
}

// Signup registers a new account.
func (h *Handler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, MsgInvalidRequest)
		return
	}

	user, err := h.accounts.Signup(c.Request.Context(), account.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a session token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, MsgInvalidRequest)
		return
	}

	user, token, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

type questionRequest struct {
	Prompt string `json:"prompt"`
}

// ProposeQuestion returns a follow-up question for the prompt.
func (h *Handler) ProposeQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, MsgInvalidRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		badRequest(c, MsgMissingPrompt)
		return
	}

	q, err := h.stylist.ProposeFollowUpQuestion(c.Request.Context(), req.Prompt)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// GenerateStyle runs the styling pipeline on an uploaded photo and saves the result.
// Form fields: image (file), prompt, answer (optional follow-up answer).
func (h *Handler) GenerateStyle(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		h.uploadFailed(c, err)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		h.uploadFailed(c, err)
		return
	}
	photo, err := model.NewImage(data, header.Header.Get("Content-Type"))
	if err != nil {
		h.fail(c, err)
		return
	}

	prompt := strings.TrimSpace(c.PostForm("prompt"))
	if prompt == "" {
		badRequest(c, MsgMissingPrompt)
		return
	}
	full := styling.ComposePrompt(prompt, c.PostForm("answer"))

	who := principal(c)
	session := h.session(who.Email)
	token, err := session.Begin()
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	result, err := h.stylist.ExecuteStyleGeneration(ctx, photo, full)
	if err != nil {
		session.Fail(token)
		h.fail(c, err)
		return
	}
	if err := session.Apply(token, result); err != nil {
		h.fail(c, err)
		return
	}

	resp := gin.H{"result": result}
	item, err := h.history.Save(ctx, who, prompt, photo, *result)
	if err != nil {
		h.logger.Warn("failed to save history", "error", err)
	} else {
		resp["historyId"] = item.ID
	}
	c.JSON(http.StatusOK, resp)
}

// uploadFailed reports a multipart read error; an oversized body is 413.
func (h *Handler) uploadFailed(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.fail(c, err)
		return
	}
	badRequest(c, MsgMissingPhoto)
}

type saveHistoryRequest struct {
	Prompt        string             `json:"prompt"`
	OriginalImage model.EncodedImage `json:"originalImage"`
	Result        model.StyleResult  `json:"result"`
}

// SaveHistory stores a result the client already holds.
func (h *Handler) SaveHistory(c *gin.Context) {
	var req saveHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, MsgInvalidRequest)
		return
	}
	original, err := req.OriginalImage.Decode()
	if err != nil {
		h.fail(c, err)
		return
	}
	if req.Result.ImageBase64 == "" {
		badRequest(c, MsgInvalidRequest)
		return
	}

	item, err := h.history.Save(c.Request.Context(), principal(c), req.Prompt, original, req.Result)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListHistory returns the caller's saved results.
func (h *Handler) ListHistory(c *gin.Context) {
	items, err := h.history.List(c.Request.Context(), principal(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if items == nil {
		items = []model.StyleHistoryItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetHistory returns one saved result.
func (h *Handler) GetHistory(c *gin.Context) {
	item, err := h.history.Get(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// ShareHistory publishes a saved result and returns its link.
func (h *Handler) ShareHistory(c *gin.Context) {
	shared, err := h.history.Share(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, shared)
}

type purchaseRequestBody struct {
	Products []model.Product `json:"products"`
}

// CreatePurchaseRequest submits the selected products.
func (h *Handler) CreatePurchaseRequest(c *gin.Context) {
	var body purchaseRequestBody
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, MsgInvalidRequest)
		return
	}

	req, err := h.purchases.Create(c.Request.Context(), principal(c), body.Products)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// ListPurchaseRequests returns requests visible to the caller.
func (h *Handler) ListPurchaseRequests(c *gin.Context) {
	overview, err := h.purchases.List(c.Request.Context(), principal(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// CompletePurchaseRequest marks a request fulfilled. Admin only.
func (h *Handler) CompletePurchaseRequest(c *gin.Context) {
	req, err := h.purchases.Complete(c.Request.Context(), principal(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}
