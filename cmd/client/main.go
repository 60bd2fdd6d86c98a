// The storefront's terminal client: browse the catalog, manage the
// shopping cart and check out through a WhatsApp deep link.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fitshop/fitshop-backend/config"
	"github.com/fitshop/fitshop-backend/internal/apiclient"
	"github.com/fitshop/fitshop-backend/internal/app/model"
	"github.com/fitshop/fitshop-backend/internal/cart"
	"github.com/fitshop/fitshop-backend/pkg/currency"
	"github.com/fitshop/fitshop-backend/pkg/logger"
)

const requestTimeout = 30 * time.Second

type app struct {
	client *apiclient.Client
	cart   *cart.Cart
	phone  string
	in     *bufio.Scanner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	// Keep structured logs out of the interactive session.
	logger.Initialize(logger.Config{Level: "error", Format: "console"})

	a := &app{
		client: apiclient.NewClient(cfg.Client.APIBaseURL),
		cart:   cart.New(cart.NewFileStorage(cfg.Client.CartFile)),
		phone:  cfg.WhatsApp.StorePhone,
		in:     bufio.NewScanner(os.Stdin),
	}

	fmt.Println("FitShop - digite 'ajuda' para ver os comandos.")
	a.run()
}

func (a *app) run() {
	for {
		fmt.Print("> ")
		if !a.in.Scan() {
			return
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "ajuda":
			a.printHelp()
		case "produtos":
			a.listProducts(strings.Join(args, " "), "")
		case "buscar":
			a.listProducts(strings.Join(args, " "), "")
		case "categoria":
			a.listProducts("", strings.Join(args, " "))
		case "promocoes":
			a.listPromotions()
		case "novidades":
			a.listNewArrivals()
		case "categorias":
			a.listCategories()
		case "adicionar":
			a.addToCart(args)
		case "remover":
			a.withProductID(args, func(id uint) {
				a.cart.RemoveItem(id)
				a.showCart()
			})
		case "quantidade":
			a.setQuantity(args)
		case "mais":
			a.withProductID(args, func(id uint) {
				a.cart.Increment(id)
				a.showCart()
			})
		case "menos":
			a.withProductID(args, func(id uint) {
				a.cart.Decrement(id)
				a.showCart()
			})
		case "carrinho":
			a.showCart()
		case "limpar":
			a.cart.Clear()
			fmt.Println("Carrinho esvaziado.")
		case "finalizar":
			a.checkout()
		case "sair":
			return
		default:
			fmt.Println("Comando desconhecido. Digite 'ajuda'.")
		}
	}
}

func (a *app) printHelp() {
	fmt.Println(`Comandos:
  produtos [termo]      lista o catálogo (busca opcional)
  buscar <termo>        busca por nome ou descrição
  categoria <nome>      lista produtos de uma categoria
  promocoes             produtos em promoção
  novidades             produtos novos
  categorias            lista as categorias
  adicionar <id> [qtd]  adiciona ao carrinho
  remover <id>          remove do carrinho
  quantidade <id> <qtd> ajusta a quantidade
  mais <id>             aumenta uma unidade
  menos <id>            diminui uma unidade
  carrinho              mostra o carrinho
  limpar                esvazia o carrinho
  finalizar             envia o pedido pelo WhatsApp
  sair                  encerra`)
}

func (a *app) listProducts(term, category string) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	products, err := a.client.ListProducts(ctx, term, category)
	if err != nil {
		fmt.Println("Erro ao listar produtos:", err)
		return
	}
	a.printProducts(products)
}

func (a *app) listPromotions() {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	products, err := a.client.Promotions(ctx, "")
	if err != nil {
		fmt.Println("Erro ao listar promoções:", err)
		return
	}
	a.printProducts(products)
}

func (a *app) listNewArrivals() {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	products, err := a.client.NewArrivals(ctx, "")
	if err != nil {
		fmt.Println("Erro ao listar novidades:", err)
		return
	}
	a.printProducts(products)
}

func (a *app) listCategories() {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	categories, err := a.client.Categories(ctx)
	if err != nil {
		fmt.Println("Erro ao listar categorias:", err)
		return
	}
	for _, c := range categories {
		fmt.Printf("  [%d] %s (%s)\n", c.ID, c.Name, c.Slug)
	}
}

func (a *app) printProducts(products []model.Product) {
	if len(products) == 0 {
		fmt.Println("Nenhum produto encontrado.")
		return
	}
	for _, p := range products {
		price := currency.FormatBRL(p.EffectivePrice())
		label := ""
		if p.OnPromotion && p.PromotionalPrice != nil {
			label = fmt.Sprintf(" (de %s)", currency.FormatBRL(p.Price))
		}
		fmt.Printf("  [%d] %s - %s%s\n", p.ID, p.Name, price, label)
	}
}

func (a *app) addToCart(args []string) {
	if len(args) < 1 {
		fmt.Println("Uso: adicionar <id> [quantidade]")
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Println("Identificador inválido.")
		return
	}
	quantity := 1
	if len(args) > 1 {
		quantity, err = strconv.Atoi(args[1])
		if err != nil {
			fmt.Println("Quantidade inválida.")
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	product, err := a.client.GetProduct(ctx, uint(id))
	if err != nil {
		fmt.Println("Erro ao buscar produto:", err)
		return
	}

	err = a.cart.AddItem(cart.Item{
		ProductID:        product.ID,
		Name:             product.Name,
		Price:            product.Price,
		PromotionalPrice: product.PromotionalPrice,
		OnPromotion:      product.OnPromotion,
		ImageURL:         product.ImageURL,
		Category:         product.Category,
	}, quantity)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			fmt.Println("Quantidade precisa ser um número inteiro positivo.")
			return
		}
		fmt.Println("Erro ao adicionar ao carrinho:", err)
		return
	}
	a.showCart()
}

func (a *app) setQuantity(args []string) {
	if len(args) < 2 {
		fmt.Println("Uso: quantidade <id> <qtd>")
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Println("Identificador inválido.")
		return
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Println("Quantidade inválida.")
		return
	}

	if err := a.cart.SetQuantity(uint(id), quantity); err != nil {
		fmt.Println("Quantidade precisa ser um número inteiro positivo.")
		return
	}
	a.showCart()
}

func (a *app) withProductID(args []string, fn func(uint)) {
	if len(args) < 1 {
		fmt.Println("Informe o identificador do produto.")
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		fmt.Println("Identificador inválido.")
		return
	}
	fn(uint(id))
}

func (a *app) showCart() {
	lines := a.cart.Lines()
	if len(lines) == 0 {
		fmt.Println("Carrinho vazio.")
		return
	}
	for _, line := range lines {
		fmt.Printf("  [%d] %s - %d x %s = %s\n",
			line.ProductID, line.Name, line.Quantity,
			currency.FormatBRL(line.EffectivePrice()),
			currency.FormatBRL(line.Subtotal()))
	}
	fmt.Printf("  Total: %s (%d itens)\n",
		currency.FormatBRL(a.cart.TotalValue()), a.cart.TotalQuantity())
}

// checkout submits the order and prints the WhatsApp link. Any failure
// leaves the cart untouched so the shopper can retry.
func (a *app) checkout() {
	if a.cart.IsEmpty() {
		fmt.Println("Carrinho vazio, nada para enviar.")
		return
	}

	lines := a.cart.Lines()
	orderItems := make([]apiclient.OrderItem, 0, len(lines))
	checkoutItems := make([]apiclient.CheckoutItem, 0, len(lines))
	for _, line := range lines {
		orderItems = append(orderItems, apiclient.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
		checkoutItems = append(checkoutItems, apiclient.CheckoutItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.EffectivePrice(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	order, err := a.client.CreateOrder(ctx, apiclient.CreateOrderRequest{Items: orderItems})
	if err != nil {
		fmt.Println("Erro ao registrar o pedido, carrinho mantido:", err)
		return
	}

	resp, err := a.client.SendOrder(ctx, apiclient.CheckoutRequest{
		Phone: a.phone,
		Items: checkoutItems,
		Total: a.cart.TotalValue(),
	})
	if err != nil {
		fmt.Println("Erro ao gerar o link do pedido, carrinho mantido:", err)
		return
	}

	fmt.Printf("Pedido #%d registrado (%s).\n", order.ID, currency.FormatBRL(order.Total))
	fmt.Println("Abra o link para enviar pelo WhatsApp:")
	fmt.Println(" ", resp.URL)

	a.cart.Clear()
}
