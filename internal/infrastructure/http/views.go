package httptransport

import (
	"context"
	"fmt"
	"strings"

	appconv "github.com/dokonbot/dokonbot/internal/application/conversation"
)

func toResponse(reply *appconv.Reply) eventResponse {
	if reply == nil {
		return eventResponse{}
	}
	resp := eventResponse{Text: reply.Text}
	for _, opt := range reply.Options {
		resp.Options = append(resp.Options, optionResponse{Label: opt.Label, Token: opt.Token})
	}
	return resp
}

func denied() *appconv.Reply {
	return &appconv.Reply{Text: "Not allowed."}
}

func adminMainMenu() *appconv.Reply {
	return &appconv.Reply{
		Text: "Hello, Administrator!\nPick a section:",
		Options: []appconv.Option{
			{Label: "Products", Token: tokenMenuProducts},
			{Label: "Sellers", Token: tokenMenuSellers},
		},
	}
}

func productsMenu() *appconv.Reply {
	return &appconv.Reply{
		Text: "Products section.\nPick an action:",
		Options: []appconv.Option{
			{Label: "All products", Token: tokenProductsList},
			{Label: "Add new product", Token: tokenProductsAdd},
		},
	}
}

func sellersMenu() *appconv.Reply {
	return &appconv.Reply{
		Text: "Sellers section.\nPick an action:",
		Options: []appconv.Option{
			{Label: "Stock held by sellers (totals)", Token: tokenSellersDebts},
			{Label: "Seller list", Token: tokenSellersList},
			{Label: "Add new seller", Token: tokenSellersAdd},
			{Label: "Seller passwords", Token: tokenSellersPasswords},
		},
	}
}

func sellerMenu(greeting string) *appconv.Reply {
	return &appconv.Reply{
		Text: greeting,
		Options: []appconv.Option{
			{Label: "My products", Token: appconv.TokenMyProducts},
			{Label: "My debt", Token: appconv.TokenMyDebt},
		},
	}
}

func (g *Gateway) viewAllProducts(ctx context.Context) (*appconv.Reply, error) {
	products, err := g.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return &appconv.Reply{Text: "No products registered yet."}, nil
	}

	var b strings.Builder
	b.WriteString("All products:\n")
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s - %d per unit\n", i+1, p.Name, p.Price)
	}
	return &appconv.Reply{Text: strings.TrimRight(b.String(), "\n")}, nil
}

func (g *Gateway) viewSellerList(ctx context.Context) (*appconv.Reply, error) {
	sellers, err := g.ledger.ListAllSellers(ctx)
	if err != nil {
		return nil, err
	}
	if len(sellers) == 0 {
		return &appconv.Reply{Text: "No sellers registered yet."}, nil
	}

	reply := &appconv.Reply{Text: "Seller list (pick one):"}
	for _, s := range sellers {
		reply.Options = append(reply.Options, appconv.Option{
			Label: s.Name,
			Token: tokenSellerPrefix + s.ID,
		})
	}
	return reply, nil
}

func (g *Gateway) viewSellerDetail(ctx context.Context, sellerID string) (*appconv.Reply, error) {
	sel, err := g.ledger.FindSeller(ctx, sellerID)
	if err != nil {
		return &appconv.Reply{Text: "Seller not found."}, nil
	}

	return &appconv.Reply{
		Text: fmt.Sprintf("Actions for %s (%s):", sel.Name, sel.Neighborhood),
		Options: []appconv.Option{
			{Label: "Products and debt", Token: tokenSellerPrefix + sel.ID + ":debt"},
			{Label: "Give stock", Token: tokenSellerPrefix + sel.ID + ":give"},
		},
	}, nil
}

func (g *Gateway) viewSellerDebt(ctx context.Context, sellerID string) (*appconv.Reply, error) {
	sel, err := g.ledger.FindSeller(ctx, sellerID)
	if err != nil {
		return &appconv.Reply{Text: "Seller not found."}, nil
	}
	items, total, err := g.ledger.SellerLineItems(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Stock held by %s (%s):\n", sel.Name, sel.Neighborhood)
	if len(items) == 0 {
		b.WriteString("No stock on hand (debt is 0).")
		return &appconv.Reply{Text: b.String()}, nil
	}
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n   Quantity: %d\n   Unit price: %d\n   Subtotal: %d\n",
			i+1, item.ProductName, item.Quantity, item.UnitPrice, item.Subtotal)
	}
	fmt.Fprintf(&b, "\nTOTAL DEBT: %d", total)
	return &appconv.Reply{Text: b.String()}, nil
}

func (g *Gateway) viewDebtSummary(ctx context.Context) (*appconv.Reply, error) {
	rows, err := g.ledger.AllSellersDebtSummary(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &appconv.Reply{Text: "No sellers registered yet."}, nil
	}

	var b strings.Builder
	b.WriteString("Debt by seller:\n")
	for i, row := range rows {
		fmt.Fprintf(&b, "%d. %s (%s) - %d\n", i+1, row.SellerName, row.Neighborhood, row.TotalDebt)
	}
	return &appconv.Reply{Text: strings.TrimRight(b.String(), "\n")}, nil
}

func (g *Gateway) viewSellerPasswords(ctx context.Context) (*appconv.Reply, error) {
	rows, err := g.ledger.AllSellerPasswords(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &appconv.Reply{Text: "No sellers registered yet."}, nil
	}

	var b strings.Builder
	b.WriteString("Seller passwords:\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%s: %s\n", row.SellerName, row.Password)
	}
	b.WriteString("\nDo not share these with third parties!")
	return &appconv.Reply{Text: b.String()}, nil
}

func (g *Gateway) viewMyProducts(ctx context.Context, sellerID, sellerName string) (*appconv.Reply, error) {
	items, _, err := g.ledger.SellerLineItems(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return &appconv.Reply{Text: "You have no stock on hand."}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your stock, %s:\n", sellerName)
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s - %d per unit\n   Quantity: %d\n", i+1, item.ProductName, item.UnitPrice, item.Quantity)
	}
	return &appconv.Reply{Text: strings.TrimRight(b.String(), "\n")}, nil
}

func (g *Gateway) viewMyDebt(ctx context.Context, sellerID, sellerName string) (*appconv.Reply, error) {
	_, total, err := g.ledger.SellerLineItems(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return &appconv.Reply{Text: fmt.Sprintf("%s, you currently owe nothing. Well done!", sellerName)}, nil
	}
	return &appconv.Reply{Text: fmt.Sprintf("Total debt for %s:\n\n%d", sellerName, total)}, nil
}
