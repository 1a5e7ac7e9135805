// Command storefront is a headless client for the FunNFood restaurant
// backend: sign in, browse the menu, build a cart, and place delivery orders
// or table reservations from the terminal. Session and cart state persist
// across invocations through the configured storage backend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/funnfood/storefront/internal/core/domain"
	"github.com/funnfood/storefront/internal/core/ports"
	"github.com/funnfood/storefront/internal/core/service"
	"github.com/funnfood/storefront/internal/infrastructure/backend"
	"github.com/funnfood/storefront/internal/infrastructure/config"
	"github.com/funnfood/storefront/internal/infrastructure/storage"
	"github.com/funnfood/storefront/pkg/logger"
)

const usage = `usage: storefront <command> [flags]

commands:
  register   create an account
  login      sign in and persist the session
  logout     clear the persisted session
  whoami     show the active session
  forgot     request password reset instructions by email
  profile    show the account profile
  update-profile  change username or email
  passwd     change the account password
  addresses  list saved delivery addresses
  add-address     save a new delivery address
  rm-address      delete a saved address
  default-address mark a saved address as the default
  menu       list the menu catalog (filter with -category or -vegetarian)
  add        add a menu item to the cart
  cart       show cart lines and totals
  qty        set the quantity of a cart line
  remove     remove a cart line
  checkout   submit the cart as a delivery order
  reserve    book a table
  order      show a submitted order
`

// app holds the stores and API clients, constructed once at startup and
// passed by reference everywhere.
type app struct {
	sessions *service.SessionStore
	cart     *service.CartStore
	client   *backend.Client
	log      zerolog.Logger
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})
	ctx := context.Background()

	store, cleanup, err := newStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("storage backend unavailable")
	}
	defer cleanup()

	sessions := service.NewSessionStore(store, log)
	client := backend.NewClient(backend.Config{BaseURL: cfg.BaseURL, Timeout: cfg.RequestTimeout}, sessions, log)
	cart := service.NewCartStore(store, sessions, client, service.Pricing{
		TaxRate:     cfg.Pricing.TaxRate,
		DeliveryFee: cfg.Pricing.DeliveryFee,
	}, log)

	sessions.Restore(ctx)
	cart.Restore(ctx)

	a := &app{sessions: sessions, cart: cart, client: client, log: log}
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", friendly(err))
		os.Exit(1)
	}
}

// newStorage selects the persistence backend per configuration. The cleanup
// function releases any held connections.
func newStorage(ctx context.Context, cfg *config.Config) (ports.Storage, func(), error) {
	noop := func() {}
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return storage.NewMemory(), noop, nil
	case config.BackendFile:
		fs, err := storage.NewFile(cfg.Storage.FilePath)
		return fs, noop, err
	case config.BackendRedis:
		client, err := storage.ConnectRedis(ctx, storage.RedisConfig{
			Addr: cfg.Storage.Redis.Addr,
			DB:   cfg.Storage.Redis.DB,
		})
		if err != nil {
			return nil, noop, err
		}
		return storage.NewRedis(client), func() { _ = client.Close() }, nil
	case config.BackendMongo:
		client, db, err := storage.ConnectMongo(ctx, storage.MongoConfig{
			URI:      cfg.Storage.Mongo.URI,
			Database: cfg.Storage.Mongo.Database,
		})
		if err != nil {
			return nil, noop, err
		}
		return storage.NewMongo(db), func() { _ = client.Disconnect(ctx) }, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami()
	case "forgot":
		return a.forgotPassword(ctx, args)
	case "profile":
		return a.profile(ctx)
	case "update-profile":
		return a.updateProfile(ctx, args)
	case "passwd":
		return a.changePassword(ctx, args)
	case "addresses":
		return a.addresses(ctx)
	case "add-address":
		return a.addAddress(ctx, args)
	case "rm-address":
		return a.removeAddress(ctx, args)
	case "default-address":
		return a.defaultAddress(ctx, args)
	case "menu":
		return a.menu(ctx, args)
	case "add":
		return a.add(ctx, args)
	case "cart":
		return a.showCart()
	case "qty":
		return a.setQuantity(ctx, args)
	case "remove":
		return a.remove(ctx, args)
	case "checkout":
		return a.checkout(ctx, args)
	case "reserve":
		return a.reserve(ctx, args)
	case "order":
		return a.order(ctx, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "user", "requested role")
	_ = fs.Parse(args)

	in := ports.SignUpInput{
		Username: *username,
		Email:    *email,
		Password: *password,
		Roles:    []string{*role},
	}
	if err := validator.New().Struct(in); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}

	result, err := a.client.SignUp(ctx, in)
	if err != nil {
		return err
	}
	fmt.Println(result.Message)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	sess, err := a.client.SignIn(ctx, ports.SignInInput{Username: *username, Password: *password})
	if err != nil {
		return err
	}
	if err := a.sessions.Save(ctx, sess); err != nil {
		return err
	}
	fmt.Printf("signed in as %s\n", sess.Username)
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("signed out")
	return nil
}

func (a *app) whoami() error {
	sess := a.sessions.Current()
	if sess == nil {
		fmt.Println("anonymous")
		return nil
	}
	fmt.Printf("%s <%s> roles=%v verified=%t\n", sess.Username, sess.Email, sess.Roles, sess.EmailVerified)
	return nil
}

func (a *app) menu(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("menu", flag.ExitOnError)
	category := fs.String("category", "", "show items of one category id")
	vegetarian := fs.Bool("vegetarian", false, "show vegetarian items only")
	categories := fs.Bool("categories", false, "list the menu categories")
	_ = fs.Parse(args)

	if *categories {
		cats, err := a.client.ListCategories(ctx)
		if err != nil {
			return err
		}
		for _, c := range cats {
			fmt.Printf("%-6s %s\n", c.ID, c.Name)
		}
		return nil
	}

	var (
		items []domain.CatalogItem
		err   error
	)
	switch {
	case *category != "":
		items, err = a.client.ListItemsByCategory(ctx, *category)
	case *vegetarian:
		items, err = a.client.ListVegetarianItems(ctx)
	default:
		items, err = a.client.ListItems(ctx)
	}
	if err != nil {
		return err
	}
	for _, item := range items {
		fmt.Printf("%-6s %-30s $%.2f\n", item.ID, item.Name, item.Price)
	}
	return nil
}

func (a *app) forgotPassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("forgot", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	_ = fs.Parse(args)

	if err := a.client.ForgotPassword(ctx, *email); err != nil {
		return err
	}
	fmt.Println("password reset instructions sent")
	return nil
}

func (a *app) profile(ctx context.Context) error {
	p, err := a.client.GetProfile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> verified=%t\n", p.Username, p.Email, p.EmailVerified)
	return nil
}

func (a *app) updateProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-profile", flag.ExitOnError)
	username := fs.String("username", "", "new username")
	email := fs.String("email", "", "new email")
	_ = fs.Parse(args)

	p, err := a.client.UpdateProfile(ctx, ports.ProfileUpdateInput{Username: *username, Email: *email})
	if err != nil {
		return err
	}
	fmt.Printf("profile updated: %s <%s>\n", p.Username, p.Email)
	return nil
}

func (a *app) changePassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("passwd", flag.ExitOnError)
	current := fs.String("current", "", "current password")
	next := fs.String("new", "", "new password")
	_ = fs.Parse(args)

	if err := a.client.ChangePassword(ctx, ports.ChangePasswordInput{
		CurrentPassword: *current,
		NewPassword:     *next,
	}); err != nil {
		return err
	}
	fmt.Println("password changed")
	return nil
}

func (a *app) addresses(ctx context.Context) error {
	list, err := a.client.ListAddresses(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("no saved addresses")
		return nil
	}
	for _, addr := range list {
		marker := " "
		if addr.IsDefault {
			marker = "*"
		}
		line := addr.AddressLine1
		if addr.AddressLine2 != "" {
			line += ", " + addr.AddressLine2
		}
		fmt.Printf("%s %-6s %s, %s, %s %s, %s\n",
			marker, addr.ID, line, addr.City, addr.State, addr.PostalCode, addr.Country)
	}
	return nil
}

func (a *app) addAddress(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-address", flag.ExitOnError)
	line1 := fs.String("line1", "", "address line 1")
	line2 := fs.String("line2", "", "address line 2")
	city := fs.String("city", "", "city")
	state := fs.String("state", "", "state")
	postal := fs.String("postal", "", "postal code")
	country := fs.String("country", "", "country")
	isDefault := fs.Bool("default", false, "mark as default address")
	_ = fs.Parse(args)

	if err := a.client.AddAddress(ctx, ports.AddressInput{
		AddressLine1: *line1,
		AddressLine2: *line2,
		City:         *city,
		State:        *state,
		PostalCode:   *postal,
		Country:      *country,
		IsDefault:    *isDefault,
	}); err != nil {
		return err
	}
	fmt.Println("address saved")
	return a.addresses(ctx)
}

func (a *app) removeAddress(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rm-address", flag.ExitOnError)
	id := fs.String("id", "", "address id")
	_ = fs.Parse(args)

	if err := a.client.DeleteAddress(ctx, *id); err != nil {
		return err
	}
	fmt.Println("address deleted")
	return nil
}

func (a *app) defaultAddress(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("default-address", flag.ExitOnError)
	id := fs.String("id", "", "address id")
	_ = fs.Parse(args)

	if err := a.client.SetDefaultAddress(ctx, *id); err != nil {
		return err
	}
	fmt.Println("default address updated")
	return a.addresses(ctx)
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	itemID := fs.String("item", "", "menu item id")
	_ = fs.Parse(args)

	item, err := a.client.FetchItem(ctx, *itemID)
	if err != nil {
		return err
	}
	if err := a.cart.AddItem(ctx, *item); err != nil {
		return err
	}
	fmt.Printf("added %s\n", item.Name)
	return a.showCart()
}

func (a *app) showCart() error {
	lines := a.cart.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	for _, l := range lines {
		fmt.Printf("%-6s %-30s %2d x $%.2f\n", l.ItemID, l.Name, l.Quantity, l.UnitPrice)
	}
	t := a.cart.Totals()
	fmt.Printf("subtotal $%.2f  tax $%.2f  delivery $%.2f  total $%.2f\n",
		t.Subtotal, t.Tax, t.DeliveryFee, t.Total)
	return nil
}

func (a *app) setQuantity(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("qty", flag.ExitOnError)
	itemID := fs.String("item", "", "menu item id")
	n := fs.Int("n", 1, "new quantity; 0 removes the line")
	_ = fs.Parse(args)

	if err := a.cart.SetQuantity(ctx, *itemID, *n); err != nil {
		return err
	}
	return a.showCart()
}

func (a *app) remove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	itemID := fs.String("item", "", "menu item id")
	_ = fs.Parse(args)

	if err := a.cart.RemoveItem(ctx, *itemID); err != nil {
		return err
	}
	return a.showCart()
}

func (a *app) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	name := fs.String("name", "", "recipient name")
	email := fs.String("email", "", "contact email")
	phone := fs.String("phone", "", "contact phone")
	address := fs.String("address", "", "delivery address")
	notes := fs.String("notes", "", "special instructions")
	_ = fs.Parse(args)

	result, err := a.cart.Checkout(ctx, domain.DeliveryDetails{
		Name:                *name,
		Email:               *email,
		Phone:               *phone,
		Address:             *address,
		SpecialInstructions: *notes,
	})
	if err != nil {
		return err
	}
	fmt.Printf("order placed: %s (ticket %s, total $%.2f)\n", result.OrderID, result.TokenNumber, result.TotalAmount)
	return nil
}

func (a *app) reserve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reserve", flag.ExitOnError)
	name := fs.String("name", "", "guest name")
	email := fs.String("email", "", "contact email")
	phone := fs.String("phone", "", "contact phone")
	party := fs.Int("party", 2, "party size")
	date := fs.String("date", "", "reservation date (YYYY-MM-DD)")
	at := fs.String("time", "", "reservation time (HH:MM)")
	_ = fs.Parse(args)

	conf, err := a.client.SubmitReservation(ctx, domain.Reservation{
		Name:      *name,
		Email:     *email,
		Phone:     *phone,
		PartySize: *party,
		Date:      *date,
		Time:      *at,
	})
	if err != nil {
		return err
	}
	fmt.Printf("reservation %s: %s\n", conf.ID, conf.Status)
	return nil
}

func (a *app) order(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	id := fs.String("id", "", "order id")
	_ = fs.Parse(args)

	conf, err := a.client.GetOrder(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("order %s: %s (ticket %s, total $%.2f)\n", conf.ID, conf.Status, conf.TokenNumber, conf.TotalAmount)
	return nil
}

// friendly maps the domain's error kinds onto the user-facing message; each
// kind keeps its own wording, never a generic failure.
func friendly(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "session expired, please sign in again"
	case errors.Is(err, domain.ErrNoSession):
		return "please sign in first"
	case errors.Is(err, domain.ErrEmptyCart):
		return "cart is empty"
	case errors.Is(err, domain.ErrNetwork):
		return "could not reach the backend, try again: " + err.Error()
	case errors.Is(err, domain.ErrStorage):
		return "local state could not be persisted: " + err.Error()
	default:
		return err.Error()
	}
}
