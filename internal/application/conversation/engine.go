package conversation

import (
	"context"
	"sync"
	"time"

	appcatalog "github.com/dokonbot/dokonbot/internal/application/catalog"
	appidentity "github.com/dokonbot/dokonbot/internal/application/identity"
	appledger "github.com/dokonbot/dokonbot/internal/application/ledger"
	domain "github.com/dokonbot/dokonbot/internal/domain/conversation"
	"github.com/dokonbot/dokonbot/internal/observability"
	"github.com/dokonbot/dokonbot/internal/pkg/logging"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Metrics are the engine's instruments. Nil fields degrade to no-ops.
type Metrics struct {
	Dispatches observability.Counter
	Durations  observability.Histogram
}

// Engine owns the per-actor conversation sessions and drives every workflow
// step. Session access is serialized per actor id: two inputs from the same
// actor never race, while distinct actors dispatch concurrently.
type Engine struct {
	identity *appidentity.Service
	catalog  *appcatalog.Service
	ledger   *appledger.Service

	mu    sync.Mutex
	slots map[string]*slot

	steps map[domain.Workflow]map[domain.Step]stepFn

	idleTTL    time.Duration
	log        *zap.Logger
	tracer     observability.Tracer
	dispatches observability.Counter
	durations  observability.Histogram
}

type slot struct {
	mu   sync.Mutex
	sess *domain.Session
}

// stepFn validates one input for one step. It either re-prompts (session
// untouched), stores the value and advances, or commits/aborts (session
// cleared by the caller through the returned outcome).
type stepFn func(ctx context.Context, sess *domain.Session, input string) (*Reply, outcome)

type outcome string

const (
	outcomeRejected  outcome = "rejected"
	outcomeAccepted  outcome = "accepted"
	outcomeCommitted outcome = "committed"
	outcomeAborted   outcome = "aborted"
)

func NewEngine(
	identitySvc *appidentity.Service,
	catalogSvc *appcatalog.Service,
	ledgerSvc *appledger.Service,
	idleTTL time.Duration,
	logger *zap.Logger,
	tracer observability.Tracer,
	metrics Metrics,
) *Engine {
	if logger == nil {
		logger = zap.L()
	}
	if tracer == nil {
		tracer = observability.NopTracer()
	}
	if metrics.Dispatches == nil {
		metrics.Dispatches = observability.NopCounter()
	}
	if metrics.Durations == nil {
		metrics.Durations = observability.NopHistogram()
	}

	e := &Engine{
		identity:   identitySvc,
		catalog:    catalogSvc,
		ledger:     ledgerSvc,
		slots:      make(map[string]*slot),
		idleTTL:    idleTTL,
		log:        logger.With(zap.String("component", "conversation_engine")),
		tracer:     tracer,
		dispatches: metrics.Dispatches,
		durations:  metrics.Durations,
	}

	// Explicit state table: (workflow, step) -> handler. Transitions only
	// ever follow the declared step sequences.
	e.steps = map[domain.Workflow]map[domain.Step]stepFn{
		domain.WorkflowAddProduct: {
			domain.StepProductName:  e.stepProductName,
			domain.StepProductPrice: e.stepProductPrice,
		},
		domain.WorkflowAddSeller: {
			domain.StepSellerName:         e.stepSellerName,
			domain.StepSellerNeighborhood: e.stepSellerNeighborhood,
			domain.StepSellerPhone:        e.stepSellerPhone,
			domain.StepSellerPassword:     e.stepSellerPassword,
		},
		domain.WorkflowGiveProduct: {
			domain.StepGiveProductName: e.stepGiveProductName,
			domain.StepGiveNewPrice:    e.stepGiveNewPrice,
			domain.StepGiveQuantity:    e.stepGiveQuantity,
		},
		domain.WorkflowLogin: {
			domain.StepLoginPassword: e.stepLoginPassword,
		},
	}
	return e
}

// HandleText dispatches free text to the actor's current step. With no
// workflow in flight (or an expired one) it returns domain.ErrNoWorkflow and
// the caller decides what an idle actor sees.
func (e *Engine) HandleText(ctx context.Context, actorID, input string) (*Reply, error) {
	s := e.slot(actorID)
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := e.currentLocked(s)
	if sess == nil {
		e.dispatches.Add(1, observability.L("workflow", "none"), observability.L("outcome", "ignored"))
		return nil, domain.ErrNoWorkflow
	}

	ctx, span := e.tracer.Start(ctx, "engine.dispatch",
		attribute.String("workflow", string(sess.Workflow)),
		attribute.String("step", string(sess.Step)),
	)
	defer span.End()

	handler := e.steps[sess.Workflow][sess.Step]
	if handler == nil {
		// Unreachable unless the step table and declared sequences drift.
		e.log.Error("no_handler_for_step",
			zap.String("workflow", string(sess.Workflow)),
			zap.String("step", string(sess.Step)),
		)
		s.sess = nil
		return text(msgGenericFailure), nil
	}

	start := time.Now()
	reply, result := handler(ctx, sess, input)
	e.durations.Observe(time.Since(start).Seconds(), observability.L("workflow", string(sess.Workflow)))
	e.dispatches.Add(1,
		observability.L("workflow", string(sess.Workflow)),
		observability.L("outcome", string(result)),
	)

	// Terminal transitions always return to idle, whether by commit or
	// abort. Rejections leave the session exactly as it was.
	if result == outcomeCommitted || result == outcomeAborted {
		s.sess = nil
	}
	return reply, nil
}

// Reset unconditionally discards the actor's in-flight workflow, if any.
func (e *Engine) Reset(ctx context.Context, actorID string) {
	s := e.slot(actorID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess != nil {
		logging.FromContext(ctx).Debug("session_reset",
			zap.String("workflow", string(s.sess.Workflow)),
		)
		e.dispatches.Add(1,
			observability.L("workflow", string(s.sess.Workflow)),
			observability.L("outcome", "reset"),
		)
	}
	s.sess = nil
}

// Active reports whether the actor has a live (non-expired) workflow.
func (e *Engine) Active(actorID string) bool {
	s := e.slot(actorID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return e.currentLocked(s) != nil
}

func (e *Engine) StartAddProduct(ctx context.Context, actorID string) (*Reply, error) {
	e.start(ctx, actorID, domain.WorkflowAddProduct, nil)
	return text(msgAskProductName), nil
}

func (e *Engine) StartAddSeller(ctx context.Context, actorID string) (*Reply, error) {
	e.start(ctx, actorID, domain.WorkflowAddSeller, nil)
	return text(msgAskSellerName), nil
}

// StartGiveProduct opens the give-product workflow targeting one seller. An
// unknown seller id refuses to start anything.
func (e *Engine) StartGiveProduct(ctx context.Context, actorID, sellerID string) (*Reply, error) {
	sel, err := e.ledger.FindSeller(ctx, sellerID)
	if err != nil {
		return text(msgSellerNotFound), nil
	}

	e.start(ctx, actorID, domain.WorkflowGiveProduct, map[string]string{
		fieldSellerID:   sel.ID,
		fieldSellerName: sel.Name,
	})
	return text(fmtAskGiveProductName(sel.Name)), nil
}

func (e *Engine) StartLogin(ctx context.Context, actorID string) (*Reply, error) {
	e.start(ctx, actorID, domain.WorkflowLogin, nil)
	return text(msgAskLoginPassword), nil
}

// start replaces any in-flight workflow for the actor, no warning and no
// resumption, and seeds the new session's field map.
func (e *Engine) start(ctx context.Context, actorID string, w domain.Workflow, seed map[string]string) {
	s := e.slot(actorID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess != nil {
		logging.FromContext(ctx).Debug("session_replaced",
			zap.String("old_workflow", string(s.sess.Workflow)),
			zap.String("new_workflow", string(w)),
		)
	}
	sess := domain.NewSession(actorID, w)
	for k, v := range seed {
		sess.Set(k, v)
	}
	s.sess = sess
	e.dispatches.Add(1,
		observability.L("workflow", string(w)),
		observability.L("outcome", "started"),
	)
}

func (e *Engine) slot(actorID string) *slot {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.slots[actorID]
	if !ok {
		s = &slot{}
		e.slots[actorID] = s
	}
	return s
}

// currentLocked returns the live session, discarding it lazily when the idle
// TTL has passed. Callers hold the slot lock.
func (e *Engine) currentLocked(s *slot) *domain.Session {
	if s.sess == nil {
		return nil
	}
	if s.sess.Expired(e.idleTTL, time.Now().UTC()) {
		e.log.Info("session_expired",
			zap.String("workflow", string(s.sess.Workflow)),
			zap.Duration("idle_ttl", e.idleTTL),
		)
		e.dispatches.Add(1,
			observability.L("workflow", string(s.sess.Workflow)),
			observability.L("outcome", "expired"),
		)
		s.sess = nil
		return nil
	}
	return s.sess
}
