// Package app wires the stores together and drives the interactive shell.
// The shell is intentionally thin: all behavior worth testing lives in the
// usecase stores.
package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cousoworks/tech-store/configs"
	"github.com/cousoworks/tech-store/internal/adapter/rest"
	"github.com/cousoworks/tech-store/internal/adapter/vault"
	"github.com/cousoworks/tech-store/internal/logging"
	"github.com/cousoworks/tech-store/internal/usecase"
)

type shell struct {
	sessions *usecase.SessionStore
	catalog  *usecase.Catalog
	cart     *usecase.Cart
	checkout *usecase.Checkout
	orders   *usecase.Orders
	admin    *usecase.Admin
	in       *bufio.Scanner
}

// Run builds the object graph and enters the command loop.
func Run(cfg configs.Config) error {
	logging.Init(cfg.App.Name, cfg.App.LogFile)
	ctx := context.Background()

	v := vault.NewFileVault(cfg.App.StateDir)

	// The session store is also the client's token source, so construction
	// is two-phase: client first with a placeholder, then the store.
	var sessions *usecase.SessionStore
	client := rest.NewClient(cfg.API.BaseURL, cfg.API.Timeout, tokenFunc(func() string {
		if sessions == nil {
			return ""
		}
		return sessions.Token()
	}))
	sessions = usecase.NewSessionStore(client, v)

	catalog := usecase.NewCatalog(client)
	cart := usecase.NewCart(catalog)
	checkout := usecase.NewCheckout(client, sessions, cart, catalog)
	orders := usecase.NewOrders(client, sessions)
	admin := usecase.NewAdmin(client, client, sessions)

	sh := &shell{
		sessions: sessions,
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		orders:   orders,
		admin:    admin,
		in:       bufio.NewScanner(os.Stdin),
	}

	// Optimistic restore; the server check runs in the background so the
	// first prompt never waits on the network.
	if sessions.Restore() {
		if s, ok := sessions.Current(); ok {
			fmt.Printf("welcome back, %s (verifying session...)\n", s.User.DisplayName())
		}
		go func() {
			if err := sessions.Revalidate(context.Background()); err != nil {
				fmt.Println("\nstored session is no longer valid, please sign in again")
			}
		}()
	}

	if _, err := catalog.Load(ctx); err != nil {
		fmt.Println("warning:", err.Error())
	}
	catalog.RefreshStatistics(ctx)

	sh.banner()
	return sh.loop(ctx)
}

type tokenFunc func() string

func (f tokenFunc) Token() string { return f() }

func (sh *shell) banner() {
	fmt.Println("🏪 TechStore — type 'help' for commands")
	if stats, ok := sh.catalog.Statistics(); ok {
		fmt.Printf("📦 %d products in store\n", stats.TotalItems)
	}
}

func (sh *shell) loop(ctx context.Context) error {
	for {
		fmt.Print("> ")
		if !sh.in.Scan() {
			return sh.in.Err()
		}
		line := strings.TrimSpace(sh.in.Text())
		if line == "" {
			continue
		}
		args := strings.Fields(line)
		if args[0] == "quit" || args[0] == "exit" {
			return nil
		}
		sh.dispatch(ctx, args[0], args[1:])
	}
}

func (sh *shell) dispatch(ctx context.Context, cmd string, args []string) {
	var err error
	switch cmd {
	case "help":
		sh.help()
	case "products":
		err = sh.cmdProducts(ctx, args)
	case "reload":
		_, err = sh.catalog.Load(ctx)
	case "stats":
		err = sh.cmdStats(ctx)
	case "ping":
		err = sh.cmdPing(ctx)
	case "login":
		err = sh.cmdLogin(ctx, args)
	case "register":
		err = sh.cmdRegister(ctx)
	case "logout":
		sh.sessions.Logout()
		sh.cart.Clear()
		fmt.Println("signed out")
	case "whoami":
		sh.cmdWhoami()
	case "add":
		err = sh.cmdAdd(args)
	case "qty":
		err = sh.cmdQty(args)
	case "rm":
		err = sh.cmdRemove(args)
	case "cart":
		sh.cmdCart()
	case "checkout":
		err = sh.cmdCheckout(ctx)
	case "orders":
		err = sh.cmdOrders(ctx)
	case "order":
		err = sh.cmdOrder(ctx, args)
	case "users":
		err = sh.cmdUsers(ctx)
	case "newproduct":
		err = sh.cmdNewProduct(ctx)
	case "editproduct":
		err = sh.cmdEditProduct(ctx, args)
	case "delproduct":
		err = sh.cmdDelProduct(ctx, args)
	case "setstatus":
		err = sh.cmdSetStatus(ctx, args)
	default:
		fmt.Println("unknown command, try 'help'")
	}
	if err != nil {
		fmt.Println("⚠", err.Error())
	}
}

func (sh *shell) help() {
	fmt.Print(`store     products [term] | reload | stats | ping
account   login <email> <password> | register | logout | whoami
cart      add <id> [qty] | qty <id> <n> | rm <id> | cart | checkout
orders    orders | order <id>
admin     users | newproduct | editproduct <id> | delproduct <id> | setstatus <id> <estado>
          quit
`)
}

// prompt reads one line of free-form input.
func (sh *shell) prompt(label string) string {
	fmt.Print(label)
	if !sh.in.Scan() {
		return ""
	}
	return strings.TrimSpace(sh.in.Text())
}
