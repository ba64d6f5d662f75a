package httptransport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	appcatalog "github.com/dokonbot/dokonbot/internal/application/catalog"
	appconv "github.com/dokonbot/dokonbot/internal/application/conversation"
	appidentity "github.com/dokonbot/dokonbot/internal/application/identity"
	appledger "github.com/dokonbot/dokonbot/internal/application/ledger"
	domconv "github.com/dokonbot/dokonbot/internal/domain/conversation"
	"github.com/dokonbot/dokonbot/internal/pkg/logging"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Event kinds the gateway accepts from the presentation layer.
const (
	KindCommand     = "command"
	KindFreeText    = "freeText"
	KindButtonPress = "buttonPress"
)

// Menu and view tokens. Opaque to the presentation layer; the gateway both
// mints them (as reply options) and routes them (as button presses).
const (
	tokenMenuProducts     = "menu:products"
	tokenMenuSellers      = "menu:sellers"
	tokenProductsList     = "products:list"
	tokenProductsAdd      = "products:add"
	tokenSellersDebts     = "sellers:debts"
	tokenSellersList      = "sellers:list"
	tokenSellersAdd       = "sellers:add"
	tokenSellersPasswords = "sellers:passwords"
	tokenSellerPrefix     = "seller:"
)

// Gateway is the HTTP edge of the assistant: the presentation layer delivers
// raw events here and renders the replies it gets back. Menu and command
// routing lives at this layer; the engine only ever sees workflow steps.
type Gateway struct {
	identity *appidentity.Service
	catalog  *appcatalog.Service
	ledger   *appledger.Service
	engine   *appconv.Engine
	log      *zap.Logger
}

func NewGateway(
	identitySvc *appidentity.Service,
	catalogSvc *appcatalog.Service,
	ledgerSvc *appledger.Service,
	engine *appconv.Engine,
	logger *zap.Logger,
) *Gateway {
	if logger == nil {
		logger = zap.L()
	}
	return &Gateway{
		identity: identitySvc,
		catalog:  catalogSvc,
		ledger:   ledgerSvc,
		engine:   engine,
		log:      logger.With(zap.String("component", "http_gateway")),
	}
}

func (g *Gateway) Register(e *echo.Echo) {
	e.POST("/v1/events", g.handleEvent)
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
}

type eventRequest struct {
	ActorID string `json:"actor_id"`
	Kind    string `json:"kind"`
	Payload string `json:"payload"`
}

type optionResponse struct {
	Label string `json:"label"`
	Token string `json:"token"`
}

type eventResponse struct {
	Text    string           `json:"text"`
	Options []optionResponse `json:"options,omitempty"`
}

func (g *Gateway) handleEvent(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.ActorID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "actor_id is required"})
	}

	ctx := logging.ContextWithLogger(c.Request().Context(),
		g.log.With(zap.String("actor_id", req.ActorID), zap.String("kind", req.Kind)))

	var (
		reply *appconv.Reply
		err   error
	)
	switch req.Kind {
	case KindCommand:
		reply, err = g.handleCommand(ctx, req.ActorID, req.Payload)
	case KindFreeText:
		reply, err = g.handleFreeText(ctx, req.ActorID, req.Payload)
	case KindButtonPress:
		reply, err = g.handleButton(ctx, req.ActorID, req.Payload)
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown event kind"})
	}
	if err != nil {
		g.log.Error("event_dispatch_failed", zap.String("kind", req.Kind), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, toResponse(reply))
}

func (g *Gateway) handleCommand(ctx context.Context, actorID, payload string) (*appconv.Reply, error) {
	ident, err := g.identity.Classify(ctx, actorID)
	if err != nil {
		return nil, err
	}

	switch strings.TrimSpace(payload) {
	case "/start":
		// /start always wipes any in-flight workflow, no warning.
		g.engine.Reset(ctx, actorID)
		switch ident.Role {
		case appidentity.RoleAdministrator:
			return adminMainMenu(), nil
		case appidentity.RoleSeller:
			return sellerMenu(fmt.Sprintf("Welcome back, %s!", ident.Seller.Name)), nil
		default:
			return g.engine.StartLogin(ctx, actorID)
		}
	case "/products":
		if ident.Role != appidentity.RoleAdministrator {
			return denied(), nil
		}
		return productsMenu(), nil
	case "/sellers":
		if ident.Role != appidentity.RoleAdministrator {
			return denied(), nil
		}
		return sellersMenu(), nil
	}

	return g.idleHint(ident), nil
}

func (g *Gateway) handleFreeText(ctx context.Context, actorID, payload string) (*appconv.Reply, error) {
	reply, err := g.engine.HandleText(ctx, actorID, payload)
	if errors.Is(err, domconv.ErrNoWorkflow) {
		ident, cerr := g.identity.Classify(ctx, actorID)
		if cerr != nil {
			return nil, cerr
		}
		return g.idleHint(ident), nil
	}
	if err != nil {
		return nil, err
	}
	return reply, nil
}

func (g *Gateway) handleButton(ctx context.Context, actorID, token string) (*appconv.Reply, error) {
	ident, err := g.identity.Classify(ctx, actorID)
	if err != nil {
		return nil, err
	}

	// Seller self-service buttons.
	switch token {
	case appconv.TokenMyProducts:
		if ident.Role != appidentity.RoleSeller {
			return denied(), nil
		}
		return g.viewMyProducts(ctx, ident.Seller.ID, ident.Seller.Name)
	case appconv.TokenMyDebt:
		if ident.Role != appidentity.RoleSeller {
			return denied(), nil
		}
		return g.viewMyDebt(ctx, ident.Seller.ID, ident.Seller.Name)
	}

	// Everything below is admin-only.
	if ident.Role != appidentity.RoleAdministrator {
		return denied(), nil
	}

	switch token {
	case tokenMenuProducts:
		return productsMenu(), nil
	case tokenMenuSellers:
		return sellersMenu(), nil
	case tokenProductsList:
		return g.viewAllProducts(ctx)
	case tokenProductsAdd:
		return g.engine.StartAddProduct(ctx, actorID)
	case tokenSellersDebts:
		return g.viewDebtSummary(ctx)
	case tokenSellersList:
		return g.viewSellerList(ctx)
	case tokenSellersAdd:
		return g.engine.StartAddSeller(ctx, actorID)
	case tokenSellersPasswords:
		return g.viewSellerPasswords(ctx)
	}

	if sellerID, action, ok := parseSellerToken(token); ok {
		switch action {
		case "":
			return g.viewSellerDetail(ctx, sellerID)
		case "debt":
			return g.viewSellerDebt(ctx, sellerID)
		case "give":
			return g.engine.StartGiveProduct(ctx, actorID, sellerID)
		}
	}

	g.log.Warn("unknown_button_token", zap.String("token", token))
	return &appconv.Reply{Text: "Unknown action."}, nil
}

func (g *Gateway) idleHint(ident appidentity.Identity) *appconv.Reply {
	switch ident.Role {
	case appidentity.RoleAdministrator:
		return adminMainMenu()
	case appidentity.RoleSeller:
		return sellerMenu("Pick an action:")
	default:
		return &appconv.Reply{Text: "You are not signed in. Press /start and enter your access password."}
	}
}

// parseSellerToken splits "seller:<id>" and "seller:<id>:<action>" tokens.
func parseSellerToken(token string) (sellerID, action string, ok bool) {
	rest, found := strings.CutPrefix(token, tokenSellerPrefix)
	if !found || rest == "" {
		return "", "", false
	}
	if id, act, split := strings.Cut(rest, ":"); split {
		return id, act, id != ""
	}
	return rest, "", true
}
