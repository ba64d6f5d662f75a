package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	domcatalog "github.com/dokonbot/dokonbot/internal/domain/catalog"
	domain "github.com/dokonbot/dokonbot/internal/domain/conversation"
	domledger "github.com/dokonbot/dokonbot/internal/domain/ledger"
	domseller "github.com/dokonbot/dokonbot/internal/domain/seller"
	"github.com/dokonbot/dokonbot/internal/pkg/logging"
	"go.uber.org/zap"
)

// Session field keys. Fixed per workflow; values are already validated when
// stored.
const (
	fieldProductName  = "product_name"
	fieldProductID    = "product_id"
	fieldSellerID     = "seller_id"
	fieldSellerName   = "seller_name"
	fieldNeighborhood = "seller_neighborhood"
	fieldPhone        = "seller_phone"
)

// --- add_product ---

func (e *Engine) stepProductName(_ context.Context, sess *domain.Session, input string) (*Reply, outcome) {
	name := strings.TrimSpace(input)
	if name == "" {
		return text(msgAskProductName), outcomeRejected
	}
	sess.Set(fieldProductName, name)
	sess.Advance(domain.StepProductPrice)
	return text(msgAskProductPrice), outcomeAccepted
}

func (e *Engine) stepProductPrice(ctx context.Context, sess *domain.Session, input string) (*Reply, outcome) {
	price, ok := parsePositive(input)
	if !ok {
		return text(msgInvalidPrice), outcomeRejected
	}

	name := sess.Get(fieldProductName)
	product, created, err := e.catalog.GetOrCreate(ctx, name, price)
	if err != nil {
		return e.abort(ctx, sess, err)
	}
	if !created && product.Price != price {
		// Overwrite silently, report "price updated". Last write wins.
		if product, err = e.catalog.UpdatePrice(ctx, product.ID, price); err != nil {
			return e.abort(ctx, sess, err)
		}
	}

	if created {
		return text(fmt.Sprintf("Done! Product %s saved at %s per unit.", product.Name, formatAmount(product.Price))), outcomeCommitted
	}
	return text(fmt.Sprintf("Done! Price updated: %s now costs %s per unit.", product.Name, formatAmount(product.Price))), outcomeCommitted
}

// --- add_seller ---

func (e *Engine) stepSellerName(_ context.Context, sess *domain.Session, input string) (*Reply, outcome) {
	name := strings.TrimSpace(input)
	if name == "" {
		return text(msgAskSellerName), outcomeRejected
	}
	sess.Set(fieldSellerName, name)
	sess.Advance(domain.StepSellerNeighborhood)
	return text(msgAskSellerNeighborhood), outcomeAccepted
}

func (e *Engine) stepSellerNeighborhood(_ context.Context, sess *domain.Session, input string) (*Reply, outcome) {
	neighborhood := strings.TrimSpace(input)
	if neighborhood == "" {
		return text(msgAskSellerNeighborhood), outcomeRejected
	}
	sess.Set(fieldNeighborhood, neighborhood)
	sess.Advance(domain.StepSellerPhone)
	return text(msgAskSellerPhone), outcomeAccepted
}

func (e *Engine) stepSellerPhone(_ context.Context, sess *domain.Session, input string) (*Reply, outcome) {
	phone := strings.ReplaceAll(strings.TrimSpace(input), " ", "")
	if !domseller.DigitsOnly(phone) {
		return text(msgInvalidPhone), outcomeRejected
	}
	sess.Set(fieldPhone, phone)
	sess.Advance(domain.StepSellerPassword)
	return text(msgAskSellerPassword), outcomeAccepted
}

func (e *Engine) stepSellerPassword(ctx context.Context, sess *domain.Session, input string) (*Reply, outcome) {
	password := strings.TrimSpace(input)
	if len(password) < domseller.MinPasswordLen {
		return text(msgPasswordTooShort), outcomeRejected
	}

	sel, err := e.identity.CreateSeller(ctx,
		sess.Get(fieldSellerName),
		sess.Get(fieldNeighborhood),
		sess.Get(fieldPhone),
		password,
	)
	switch {
	case errors.Is(err, domseller.ErrPhoneTaken), errors.Is(err, domseller.ErrPasswordTaken):
		// Deliberately vague to the admin; the log carries the real reason.
		return text(msgSellerDuplicate), outcomeAborted
	case err != nil:
		return e.abort(ctx, sess, err)
	}

	return text(fmt.Sprintf(
		"New seller added!\nName: %s\nNeighborhood: %s\nPhone: %s\nAccess password: %s\n\nHand this password to the seller.",
		sel.Name, sel.Neighborhood, sel.Phone, sel.Password,
	)), outcomeCommitted
}

// --- give_product ---

func (e *Engine) stepGiveProductName(ctx context.Context, sess *domain.Session, input string) (*Reply, outcome) {
	name := strings.TrimSpace(input)
	if name == "" {
		return text(fmtAskGiveProductName(sess.Get(fieldSellerName))), outcomeRejected
	}
	sess.Set(fieldProductName, name)

	// The one data-dependent fork: an existing product skips straight to
	// quantity, a new one detours through its price.
	product, err := e.catalog.FindByName(ctx, name)
	switch {
	case errors.Is(err, domcatalog.ErrNotFound):
		sess.Advance(domain.StepGiveNewPrice)
		return text(fmt.Sprintf("Product %s is not registered yet.\nEnter its unit price (e.g. 12500):", name)), outcomeAccepted
	case err != nil:
		return e.abort(ctx, sess, err)
	}

	sess.Set(fieldProductID, product.ID)
	sess.Advance(domain.StepGiveQuantity)
	return text(fmt.Sprintf("Product %s found at %s per unit.\nHow many units were handed out?", product.Name, formatAmount(product.Price))), outcomeAccepted
}

func (e *Engine) stepGiveNewPrice(ctx context.Context, sess *domain.Session, input string) (*Reply, outcome) {
	price, ok := parsePositive(input)
	if !ok {
		return text(msgInvalidPrice), outcomeRejected
	}

	product, _, err := e.catalog.GetOrCreate(ctx, sess.Get(fieldProductName), price)
	if err != nil {
		return e.abort(ctx, sess, err)
	}

	sess.Set(fieldProductID, product.ID)
	sess.Advance(domain.StepGiveQuantity)
	return text(fmt.Sprintf("Product %s saved at %s per unit.\nHow many units were handed out?", product.Name, formatAmount(product.Price))), outcomeAccepted
}

func (e *Engine) stepGiveQuantity(ctx context.Context, sess *domain.Session, input string) (*Reply, outcome) {
	quantity, ok := parsePositive(input)
	if !ok {
		return text(msgInvalidQuantity), outcomeRejected
	}

	assignment, err := e.ledger.Assign(ctx, sess.Get(fieldSellerID), sess.Get(fieldProductID), quantity)
	switch {
	case errors.Is(err, domseller.ErrNotFound), errors.Is(err, domcatalog.ErrNotFound):
		return text(msgNotFoundAbort), outcomeAborted
	case err != nil:
		return e.abort(ctx, sess, err)
	}

	return text(fmt.Sprintf(
		"Stock recorded.\nSeller: %s\nProduct: %s\nQuantity: %d\nAdded to debt: %s",
		sess.Get(fieldSellerName), sess.Get(fieldProductName), assignment.Quantity, formatAmount(assignment.Subtotal()),
	)), outcomeCommitted
}

// --- login ---

func (e *Engine) stepLoginPassword(ctx context.Context, sess *domain.Session, input string) (*Reply, outcome) {
	sel, err := e.identity.Login(ctx, input, sess.ActorID)
	switch {
	case errors.Is(err, domseller.ErrNotFound), errors.Is(err, domseller.ErrPasswordBound):
		// Stay on the step: the actor may simply retry. Session untouched.
		return text(msgLoginRejected), outcomeRejected
	case err != nil:
		return e.abort(ctx, sess, err)
	}

	return &Reply{
		Text: fmt.Sprintf("Signed in successfully, %s! You can now view your stock and debt.", sel.Name),
		Options: []Option{
			{Label: "My products", Token: TokenMyProducts},
			{Label: "My debt", Token: TokenMyDebt},
		},
	}, outcomeCommitted
}

// abort is the commit-boundary error sink: every non-validation failure
// clears the workflow and produces the same generic message. Retryable and
// fatal errors are deliberately not distinguished.
func (e *Engine) abort(ctx context.Context, sess *domain.Session, err error) (*Reply, outcome) {
	logging.FromContext(ctx).Error("workflow_aborted",
		zap.String("workflow", string(sess.Workflow)),
		zap.String("step", string(sess.Step)),
		zap.Error(err),
	)
	if errors.Is(err, domledger.ErrNotFound) || errors.Is(err, domcatalog.ErrNotFound) || errors.Is(err, domseller.ErrNotFound) {
		return text(msgNotFoundAbort), outcomeAborted
	}
	return text(msgGenericFailure), outcomeAborted
}

func parsePositive(input string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// formatAmount renders a currency amount with thousands separated by spaces,
// e.g. 12500 -> "12 500".
func formatAmount(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
