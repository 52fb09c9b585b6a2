package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cousoworks/tech-store/internal/entity"
	"github.com/cousoworks/tech-store/internal/usecase"
)

func (sh *shell) cmdProducts(ctx context.Context, args []string) error {
	if !sh.catalog.Loaded() {
		if _, err := sh.catalog.Load(ctx); err != nil {
			return err
		}
	}
	term := strings.Join(args, " ")
	items := sh.catalog.Search(term)
	if len(items) == 0 {
		fmt.Println("no products available")
		return nil
	}
	for _, p := range items {
		badge := ""
		if p.LowStock() {
			badge = "  (few left)"
		}
		fmt.Printf("%4d  %-30s %10s  stock %d%s\n", p.ID, p.Name, p.Price, p.Stock, badge)
	}
	return nil
}

func (sh *shell) cmdStats(ctx context.Context) error {
	sh.catalog.RefreshStatistics(ctx)
	stats, ok := sh.catalog.Statistics()
	if !ok {
		fmt.Println("statistics unavailable")
		return nil
	}
	fmt.Printf("products %d — with stock %d, without %d, total units %d\n",
		stats.TotalItems, stats.WithStock, stats.WithoutStock, stats.TotalStock)
	return nil
}

func (sh *shell) cmdPing(ctx context.Context) error {
	version, err := sh.catalog.Ping(ctx)
	if err != nil {
		return err
	}
	fmt.Println("API ok, version", version)
	return nil
}

func (sh *shell) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <email> <password>")
	}
	sess, err := sh.sessions.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s)\n", sess.User.DisplayName(), sess.User.Role)
	return nil
}

func (sh *shell) cmdRegister(ctx context.Context) error {
	form := entity.RegisterForm{
		Email:           sh.prompt("email: "),
		Name:            sh.prompt("name: "),
		Surname:         sh.prompt("surname (optional): "),
		Password:        sh.prompt("password: "),
		ConfirmPassword: sh.prompt("confirm password: "),
	}
	sess, err := sh.sessions.Register(ctx, form)
	if err != nil {
		return err
	}
	fmt.Printf("account created, signed in as %s\n", sess.User.DisplayName())
	return nil
}

func (sh *shell) cmdWhoami() {
	sess, ok := sh.sessions.Current()
	if !ok {
		fmt.Println("not signed in")
		return
	}
	state := ""
	if sh.sessions.State() == usecase.SessionRestoring {
		state = " (session not yet verified)"
	}
	fmt.Printf("%s <%s> — %s%s\n", sess.User.DisplayName(), sess.User.Email, sess.User.Role, state)
}

func (sh *shell) cmdAdd(args []string) error {
	if len(args) < 1 {
		return errors.New("usage: add <id> [qty]")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.New("product id must be a number")
	}
	qty := int64(1)
	if len(args) > 1 {
		if qty, err = strconv.ParseInt(args[1], 10, 64); err != nil {
			return errors.New("quantity must be a number")
		}
	}
	before := sh.cart.Quantity(id)
	got, err := sh.cart.Add(id, qty)
	if err != nil {
		return err
	}
	fmt.Print(sh.addOutcome(id, before, qty, got))
	return nil
}

// addOutcome renders the add result, reporting the product's real stock
// figure when the ask was truncated.
func (sh *shell) addOutcome(id, before, asked, got int64) string {
	if got < before+asked {
		if p, ok := sh.catalog.Product(id); ok {
			return fmt.Sprintf("only %d available — in cart: %d\n", p.Stock, got)
		}
	}
	return fmt.Sprintf("in cart: %d\n", got)
}

func (sh *shell) cmdQty(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: qty <id> <n>")
	}
	id, err1 := strconv.ParseInt(args[0], 10, 64)
	n, err2 := strconv.ParseInt(args[1], 10, 64)
	if err1 != nil || err2 != nil {
		return errors.New("usage: qty <id> <n>")
	}
	got, err := sh.cart.SetQuantity(id, n)
	if err != nil {
		return err
	}
	if got == 0 {
		fmt.Println("removed from cart")
	} else {
		fmt.Printf("in cart: %d\n", got)
	}
	return nil
}

func (sh *shell) cmdRemove(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: rm <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.New("product id must be a number")
	}
	sh.cart.Remove(id)
	return nil
}

func (sh *shell) cmdCart() {
	lines := sh.cart.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, l := range lines {
		if !l.InCatalog {
			fmt.Printf("%4d  (no longer available)          x%d\n", l.ProductID, l.Quantity)
			continue
		}
		fmt.Printf("%4d  %-30s %10s  x%d = %s\n",
			l.ProductID, l.Product.Name, l.Product.Price, l.Quantity, l.Product.Price.Mul(l.Quantity))
	}
	fmt.Printf("total: %d items, %s\n", sh.cart.TotalItems(), sh.cart.TotalPrice())
}

func (sh *shell) cmdCheckout(ctx context.Context) error {
	address := sh.prompt("shipping address (optional): ")
	notes := sh.prompt("notes (optional): ")

	order, err := sh.checkout.Submit(ctx, address, notes)
	if errors.Is(err, usecase.ErrAuthenticationRequired) {
		return errors.New("sign in first: login <email> <password>")
	}
	if err != nil {
		return err
	}
	fmt.Printf("🎉 order #%d placed — %d items, %s\n", order.ID, sh.lastOrderItems(order), order.Total)
	sh.checkout.Reset()
	return nil
}

func (sh *shell) lastOrderItems(o entity.Order) int64 {
	var n int64
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

func (sh *shell) cmdOrders(ctx context.Context) error {
	orders, err := sh.orders.List(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Println("no orders yet")
		return nil
	}
	for _, o := range orders {
		fmt.Printf("#%-4d %s  %10s  %s\n", o.ID, o.PlacedAt.Format("2006-01-02"), o.Total, o.Status)
	}
	return nil
}

func (sh *shell) cmdOrder(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: order <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.New("order id must be a number")
	}
	o, err := sh.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("order #%d — %s — %s\n", o.ID, o.Status, o.Total)
	for _, it := range o.Items {
		fmt.Printf("  %-30s x%d  %s\n", it.ProductName, it.Quantity, it.Subtotal)
	}
	return nil
}

func (sh *shell) cmdUsers(ctx context.Context) error {
	users, err := sh.admin.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		active := "active"
		if !u.Active {
			active = "inactive"
		}
		fmt.Printf("%4d  %-30s %-10s %s\n", u.ID, u.Email, u.Role, active)
	}
	return nil
}

func (sh *shell) cmdNewProduct(ctx context.Context) error {
	name := sh.prompt("name: ")
	description := sh.prompt("description: ")
	price, err := parseEuros(sh.prompt("price (euros): "))
	if err != nil {
		return err
	}
	stock, err := strconv.ParseInt(sh.prompt("stock: "), 10, 64)
	if err != nil {
		return errors.New("stock must be a number")
	}
	p, err := sh.admin.CreateProduct(ctx, entity.ProductDraft{
		Name:        name,
		Description: description,
		Stock:       stock,
		Price:       price,
	})
	if err != nil {
		return err
	}
	fmt.Printf("created product #%d — remember to 'reload'\n", p.ID)
	return nil
}

func (sh *shell) cmdEditProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: editproduct <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.New("product id must be a number")
	}

	// Empty answers leave the field untouched.
	var patch entity.ProductPatch
	if v := sh.prompt("name (empty keeps current): "); v != "" {
		patch.Name = &v
	}
	if v := sh.prompt("description (empty keeps current): "); v != "" {
		patch.Description = &v
	}
	if v := sh.prompt("price in euros (empty keeps current): "); v != "" {
		price, err := parseEuros(v)
		if err != nil {
			return err
		}
		patch.Price = &price
	}
	if v := sh.prompt("stock (empty keeps current): "); v != "" {
		stock, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.New("stock must be a number")
		}
		patch.Stock = &stock
	}

	p, err := sh.admin.UpdateProduct(ctx, id, patch)
	if err != nil {
		return err
	}
	fmt.Printf("updated product #%d — remember to 'reload'\n", p.ID)
	return nil
}

func (sh *shell) cmdDelProduct(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: delproduct <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.New("product id must be a number")
	}
	// Deletion is irreversible server-side, so confirm here.
	if sh.prompt(fmt.Sprintf("delete product %d? this cannot be undone [y/N]: ", id)) != "y" {
		fmt.Println("cancelled")
		return nil
	}
	if err := sh.admin.DeleteProduct(ctx, id); err != nil {
		return err
	}
	fmt.Println("deleted — remember to 'reload'")
	return nil
}

func (sh *shell) cmdSetStatus(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: setstatus <id> <pendiente|procesando|enviado|entregado|cancelado>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return errors.New("order id must be a number")
	}
	o, err := sh.admin.SetOrderStatus(ctx, id, entity.OrderStatus(args[1]))
	if err != nil {
		return err
	}
	fmt.Printf("order #%d is now %s\n", o.ID, o.Status)
	return nil
}

func parseEuros(s string) (entity.Money, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return entity.Money{}, errors.New("price must be a non-negative amount in euros")
	}
	return entity.EUR(int64(math.Round(v * 100))), nil
}
