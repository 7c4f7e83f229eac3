package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"storefront/internal/api"
	"storefront/internal/config"
	"storefront/internal/services"
	"storefront/internal/stub"
)

func main() {
	runStub := flag.Bool("stub", false, "run the local stub backend and point the client at it")
	flag.Parse()

	cfg := config.Load()

	var stubServer *stub.Server
	if *runStub {
		var err error
		stubServer, err = stub.New(stub.Config{
			DBDSN:     cfg.StubDBDSN,
			JWTSecret: cfg.StubSecret,
			AMQPURL:   cfg.StubAMQPURL,
			Seed:      true,
		})
		if err != nil {
			log.Fatalf("failed to start stub backend: %v", err)
		}
		go func() {
			if err := stubServer.Listen(cfg.StubAddr); err != nil {
				log.Fatalf("stub backend failed: %v", err)
			}
		}()
		cfg.BaseURL = "http://localhost" + cfg.StubAddr
		log.Printf("using local stub backend at %s", cfg.BaseURL)
	}

	session := services.NewSession()
	client := api.NewClient(cfg.BaseURL, session)

	shell := &shell{
		cfg:      cfg,
		session:  session,
		client:   client,
		cart:     services.NewCart(client, cfg.PlatformFee, cfg.StrikeMarkup),
		wishlist: services.NewWishlist(client),
		orders:   services.NewOrders(client),
		out:      os.Stdout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		shell.run(os.Stdin)
		close(done)
	}()

	select {
	case <-quit:
	case <-done:
	}

	if stubServer != nil {
		if err := stubServer.Shutdown(); err != nil {
			log.Printf("error during stub shutdown: %v", err)
		}
	}
}

// shell is the interactive storefront session: one logged-in user, one cart,
// at most one checkout flow at a time.
type shell struct {
	cfg      config.Config
	session  *services.Session
	client   *api.Client
	cart     *services.Cart
	wishlist *services.WishlistService
	orders   *services.OrderService
	checkout *services.Checkout
	out      io.Writer
}

func (sh *shell) run(in io.Reader) {
	fmt.Fprintln(sh.out, "storefront shell — type 'help' for commands, 'quit' to exit")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, "> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		if err := sh.dispatch(strings.Fields(line)); err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
	}
}

func (sh *shell) dispatch(args []string) error {
	ctx := context.Background()
	switch args[0] {
	case "help":
		sh.printHelp()
		return nil
	case "register":
		return sh.cmdRegister(ctx, args[1:])
	case "login":
		return sh.cmdLogin(ctx, args[1:])
	case "logout":
		sh.session.Clear()
		fmt.Fprintln(sh.out, "logged out")
		return nil
	case "profile":
		return sh.cmdProfile(ctx)
	case "products":
		return sh.cmdProducts(ctx)
	case "search":
		return sh.cmdSearch(ctx, args[1:])
	case "product":
		return sh.cmdProduct(ctx, args[1:])
	case "brands", "colours", "sizes":
		return sh.cmdFacet(ctx, args[0])
	case "cart":
		return sh.cmdCart(ctx, args[1:])
	case "wishlist":
		return sh.cmdWishlist(ctx, args[1:])
	case "checkout":
		return sh.cmdCheckout(ctx, args[1:])
	case "orders":
		return sh.cmdOrders(ctx, args[1:])
	case "review":
		return sh.cmdReview(ctx, args[1:])
	default:
		return fmt.Errorf("unknown command %q, try 'help'", args[0])
	}
}

func (sh *shell) printHelp() {
	fmt.Fprint(sh.out, `commands:
  register <username> <email> <password>   create an account and log in
  login <username> <password>              log in
  logout                                   drop the session
  profile                                  show the logged-in user
  products                                 show suggested products
  search <text>                            search the catalog
  product <id>                             show one product with sizes
  brands | colours | sizes                 list catalog facets
  cart [add <productId> [sizeId] | inc <itemId> | dec <itemId> |
        rm <itemId> | clear]               view or mutate the cart
  wishlist [add <productId> | rm <itemId> | clear]
  checkout                                 start checkout (loads addresses)
  checkout select <addressId>              pick a delivery address
  checkout pay COD                         submit the order
  orders [<search text>]                   list your orders
  review <productId> <rating> [comment]    review a product
`)
}

func (sh *shell) cmdRegister(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errors.New("usage: register <username> <email> <password>")
	}
	result, err := sh.client.Register(ctx, api.RegisterRequest{
		Username: args[0], Email: args[1], Password: args[2],
	})
	if err != nil {
		return err
	}
	sh.session.SetCredentials(result.Token, &result.User)
	fmt.Fprintf(sh.out, "registered and logged in as %s\n", result.User.Username)
	return nil
}

func (sh *shell) cmdLogin(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: login <username> <password>")
	}
	result, err := sh.client.Login(ctx, api.LoginRequest{Username: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	sh.session.SetCredentials(result.Token, &result.User)
	fmt.Fprintf(sh.out, "logged in as %s\n", result.User.Username)
	return nil
}

func (sh *shell) cmdProfile(ctx context.Context) error {
	if !sh.session.IsAuthenticated() {
		return errors.New("not logged in")
	}
	user, err := sh.client.GetProfile(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "#%d %s <%s>\n", user.ID, user.Username, user.Email)
	if expiry, err := sh.session.TokenExpiry(); err == nil {
		fmt.Fprintf(sh.out, "session valid until %s\n", expiry.Format("2006-01-02 15:04"))
	}
	return nil
}

func (sh *shell) cmdProducts(ctx context.Context) error {
	products, err := sh.client.GetRandomProducts(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Fprintf(sh.out, "#%d %-28s %9.2f  %s/%s\n", p.ID, p.Name, p.Price, p.Brand, p.Colour)
	}
	return nil
}

func (sh *shell) cmdSearch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: search <text>")
	}
	products, err := sh.client.SearchProducts(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(sh.out, "no products found")
		return nil
	}
	for _, p := range products {
		fmt.Fprintf(sh.out, "#%d %-28s %9.2f\n", p.ID, p.Name, p.Price)
	}
	return nil
}

func (sh *shell) cmdProduct(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: product <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad product id %q", args[0])
	}
	product, err := sh.client.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "#%d %s — %.2f\n%s\n", product.ID, product.Name, product.Price, product.Description)
	for _, size := range product.Sizes {
		fmt.Fprintf(sh.out, "  size %s (id %d)\n", size.Size, size.ID)
	}
	return nil
}

func (sh *shell) cmdFacet(ctx context.Context, facet string) error {
	var values []string
	var err error
	switch facet {
	case "brands":
		values, err = sh.client.GetBrands(ctx)
	case "colours":
		values, err = sh.client.GetColours(ctx)
	default:
		values, err = sh.client.GetSizes(ctx)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, strings.Join(values, ", "))
	return nil
}

func (sh *shell) cmdCart(ctx context.Context, args []string) error {
	if !sh.session.IsAuthenticated() {
		return errors.New("log in first")
	}
	if len(args) == 0 {
		return sh.showCart(ctx)
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return errors.New("usage: cart add <productId> [sizeId]")
		}
		productID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad product id %q", args[1])
		}
		req := api.AddToCartRequest{ProductID: productID, Quantity: 1}
		if len(args) > 2 {
			sizeID, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("bad size id %q", args[2])
			}
			req.ProductSizeID = &sizeID
		}
		if err := sh.cart.Add(ctx, req); err != nil {
			if errors.Is(err, api.ErrInsufficientStock) {
				fmt.Fprintln(sh.out, "not enough stock for this size")
				return nil
			}
			return err
		}
		return sh.showCart(ctx)
	case "inc", "dec":
		if len(args) < 2 {
			return fmt.Errorf("usage: cart %s <itemId>", args[0])
		}
		itemID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad item id %q", args[1])
		}
		delta := 1
		if args[0] == "dec" {
			delta = -1
		}
		err = sh.cart.ChangeQuantity(ctx, itemID, delta)
		switch {
		case errors.Is(err, services.ErrConfirmRemoval):
			fmt.Fprintln(sh.out, "quantity would reach 0 — use 'cart rm' to remove the item")
			return nil
		case errors.Is(err, api.ErrInsufficientStock):
			fmt.Fprintln(sh.out, "not enough stock for this size")
			return nil
		case err != nil:
			return err
		}
		return sh.showCart(ctx)
	case "rm":
		if len(args) < 2 {
			return errors.New("usage: cart rm <itemId>")
		}
		itemID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad item id %q", args[1])
		}
		if err := sh.cart.Remove(ctx, itemID); err != nil {
			return err
		}
		return sh.showCart(ctx)
	case "clear":
		return sh.cart.Clear(ctx)
	default:
		return fmt.Errorf("unknown cart subcommand %q", args[0])
	}
}

func (sh *shell) showCart(ctx context.Context) error {
	if err := sh.cart.Refresh(ctx); err != nil {
		return err
	}
	items := sh.cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(sh.out, "your cart is empty")
		return nil
	}
	for _, item := range items {
		size := "-"
		if item.ProductSize != nil {
			size = item.ProductSize.Size
		}
		fmt.Fprintf(sh.out, "item %d: %s (size %s) x%d @ %.2f\n",
			item.ID, item.Product.Name, size, item.Quantity, item.Product.Price)
	}
	totals := sh.cart.Totals()
	fmt.Fprintf(sh.out, "subtotal %.2f + platform fee %.2f = %.2f (was %.2f)\n",
		totals.Subtotal, totals.PlatformFee, totals.Total, totals.StrikeTotal)
	return nil
}

func (sh *shell) cmdWishlist(ctx context.Context, args []string) error {
	if !sh.session.IsAuthenticated() {
		return errors.New("log in first")
	}
	if len(args) == 0 {
		if err := sh.wishlist.Refresh(ctx); err != nil {
			return err
		}
		items := sh.wishlist.Items()
		if len(items) == 0 {
			fmt.Fprintln(sh.out, "your wishlist is empty")
			return nil
		}
		for _, item := range items {
			fmt.Fprintf(sh.out, "item %d: %s x%d\n", item.ID, item.Product.Name, item.Quantity)
		}
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return errors.New("usage: wishlist add <productId>")
		}
		productID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad product id %q", args[1])
		}
		return sh.wishlist.Add(ctx, api.AddToWishlistRequest{ProductID: productID, Quantity: 1})
	case "rm":
		if len(args) < 2 {
			return errors.New("usage: wishlist rm <itemId>")
		}
		itemID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad item id %q", args[1])
		}
		return sh.wishlist.Remove(ctx, itemID)
	case "clear":
		return sh.wishlist.Clear(ctx)
	default:
		return fmt.Errorf("unknown wishlist subcommand %q", args[0])
	}
}

func (sh *shell) cmdCheckout(ctx context.Context, args []string) error {
	if !sh.session.IsAuthenticated() {
		return errors.New("log in first")
	}

	if len(args) == 0 {
		sh.checkout = services.NewCheckout(sh.client, sh.session)
		if err := sh.checkout.LoadAddresses(ctx); err != nil {
			sh.checkout = nil
			return err
		}
		addresses := sh.checkout.Addresses()
		if len(addresses) == 0 {
			fmt.Fprintln(sh.out, "no saved addresses — add one first")
			return nil
		}
		for _, addr := range addresses {
			marker := " "
			if addr.ID == sh.checkout.SelectedAddress() {
				marker = "*"
			}
			fmt.Fprintf(sh.out, "%s address %d: %s, %s, %s %s (%s)\n",
				marker, addr.ID, addr.Line1, addr.City, addr.State, addr.Zip, addr.Type)
		}
		fmt.Fprintln(sh.out, "use 'checkout select <addressId>' then 'checkout pay COD'")
		return nil
	}

	if sh.checkout == nil {
		return errors.New("start with 'checkout' first")
	}

	switch args[0] {
	case "select":
		if len(args) < 2 {
			return errors.New("usage: checkout select <addressId>")
		}
		addressID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad address id %q", args[1])
		}
		return sh.checkout.SelectAddress(addressID)
	case "pay":
		if len(args) < 2 {
			return errors.New("usage: checkout pay COD")
		}
		if err := sh.checkout.ProceedToPayment(); err != nil {
			return err
		}
		err := sh.checkout.Submit(ctx, args[1])
		sh.checkout = nil // flow is done either way
		if err != nil {
			fmt.Fprintln(sh.out, "failed to place order")
			return err
		}
		fmt.Fprintln(sh.out, "order placed successfully")
		return nil
	default:
		return fmt.Errorf("unknown checkout subcommand %q", args[0])
	}
}

func (sh *shell) cmdOrders(ctx context.Context, args []string) error {
	if !sh.session.IsAuthenticated() {
		return errors.New("log in first")
	}
	orders, err := sh.orders.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(sh.out, "you have no orders yet")
		return nil
	}
	for _, order := range orders {
		receipt := services.BuildReceipt(order)
		fmt.Fprintf(sh.out, "order %s — %s, delivery %s, total %.2f\n",
			order.ID, services.StatusHeading(order.Status),
			order.DeliveryDate.Format("2 January 2006"), receipt.FinalPrice)
		for _, item := range order.Items {
			fmt.Fprintf(sh.out, "  %s x%d\n", item.Product.Name, item.Quantity)
		}
		if prompt := services.ReviewPrompt(order.Status); prompt != "" {
			fmt.Fprintf(sh.out, "  %s\n", prompt)
		}
	}
	return nil
}

func (sh *shell) cmdReview(ctx context.Context, args []string) error {
	if !sh.session.IsAuthenticated() {
		return errors.New("log in first")
	}
	if len(args) < 2 {
		return errors.New("usage: review <productId> <rating> [comment]")
	}
	productID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("bad product id %q", args[0])
	}
	rating, err := strconv.Atoi(args[1])
	if err != nil || rating < 1 || rating > 5 {
		return errors.New("rating must be 1 to 5")
	}

	_, err = sh.client.AddReview(ctx, api.AddReviewRequest{
		ProductID: productID,
		UserID:    sh.session.UserID(),
		Rating:    rating,
		Comment:   strings.Join(args[2:], " "),
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "review submitted")
	return nil
}
