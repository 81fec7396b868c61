package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/adapters"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/domain"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/internal/order/placing"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/pkg/contracts"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/pkg/idempotency"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/pkg/logging"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/pkg/metrics"
	"github.com/MALLLAG/Domain-Modeling-Made-Functional/pkg/outbox"
)

var errIdempotencyRace = errors.New("idempotency race")

type cfg struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	DatabaseURL    string        `env:"DATABASE_URL,required"`
	AddressBaseURL string        `env:"ADDRESS_BASE_URL,required"`
	MailerBaseURL  string        `env:"MAILER_BASE_URL"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"2500ms"`
	EventsTopic    string        `env:"EVENTS_TOPIC" envDefault:"orders.events"`
	ShippingCost   string        `env:"SHIPPING_COST" envDefault:"5.00"`
	DevCatalog     bool          `env:"DEV_CATALOG" envDefault:"false"`
}

// catalog is what both the pgx and the in-memory implementations provide.
type catalog interface {
	CodeExists(ctx context.Context, code domain.ProductCode) bool
	UnitPrice(ctx context.Context, code domain.ProductCode) (domain.Price, error)
}

type customerDTO struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address"`
}

type addressDTO struct {
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	AddressLine3 string `json:"address_line3,omitempty"`
	AddressLine4 string `json:"address_line4,omitempty"`
	City         string `json:"city"`
	ZipCode      string `json:"zip_code"`
}

type orderLineDTO struct {
	OrderLineID string  `json:"order_line_id"`
	ProductCode string  `json:"product_code"`
	Quantity    float64 `json:"quantity"`
}

type placeOrderRequest struct {
	OrderID         string         `json:"order_id"`
	CustomerInfo    customerDTO    `json:"customer_info"`
	ShippingAddress addressDTO     `json:"shipping_address"`
	BillingAddress  addressDTO     `json:"billing_address"`
	Lines           []orderLineDTO `json:"lines"`
}

type placeOrderResponse struct {
	OrderID string            `json:"order_id"`
	Status  string            `json:"status"`
	Events  []contracts.Event `json:"events,omitempty"`
}

func main() {
	var cfg cfg
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("db ping error: %v", err)
	}

	workflow := buildWorkflow(cfg, pool)
	srvMetrics := metrics.NewServerMetrics("order_service")
	placeMetrics := metrics.NewPlacementMetrics("order_service")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "db_error"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		status := handlePlaceOrder(w, r, cfg, pool, workflow, placeMetrics)
		srvMetrics.Requests.WithLabelValues("orders", status).Inc()
		srvMetrics.LatencyMS.WithLabelValues("orders").Observe(float64(time.Since(start).Milliseconds()))
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("order-service listening on :%s (dev catalog=%v)", cfg.Port, cfg.DevCatalog)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server error: %v", err)
	}
}

func buildWorkflow(cfg cfg, pool *pgxpool.Pool) *placing.Workflow {
	var cat catalog = adapters.NewPgxCatalog(pool)
	if cfg.DevCatalog {
		cat = adapters.NewMemoryCatalog(defaultPrices())
	}

	checker := adapters.NewAddressChecker(cfg.AddressBaseURL, cfg.RequestTimeout)
	letters := adapters.NewLetterRenderer()

	var send placing.SendOrderAcknowledgment = adapters.LogAcknowledgmentSender{}.Send
	if cfg.MailerBaseURL != "" {
		send = adapters.NewHTTPAcknowledgmentSender(cfg.MailerBaseURL, cfg.RequestTimeout).Send
	}

	shippingCost, err := decimal.NewFromString(cfg.ShippingCost)
	if err != nil {
		shippingCost = decimal.Zero
	}

	return placing.New(placing.Deps{
		CheckProductCodeExists: cat.CodeExists,
		CheckAddressExists:     checker.CheckExists,
		GetProductPrice:        cat.UnitPrice,
		CalculateShippingCost:  adapters.FlatShippingCost(shippingCost),
		CreateLetter:           letters.Create,
		SendAcknowledgment:     send,
	})
}

func defaultPrices() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"W1234": decimal.RequireFromString("3.00"),
		"W0001": decimal.RequireFromString("1.50"),
		"G123":  decimal.RequireFromString("7.00"),
		"G001":  decimal.RequireFromString("2.25"),
	}
}

func handlePlaceOrder(w http.ResponseWriter, r *http.Request, cfg cfg, pool *pgxpool.Pool, workflow *placing.Workflow, placeMetrics *metrics.PlacementMetrics) string {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "method not allowed"})
		return "405"
	}
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return "400"
	}

	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		orderID = uuid.NewString()
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	idemKey := idempotency.Key(r)
	if idemKey != "" {
		if existing, err := orderByIdempotencyKey(ctx, pool, idemKey); err == nil && existing != "" {
			writeJSON(w, http.StatusOK, placeOrderResponse{OrderID: existing, Status: "IDEMPOTENT_REPLAY"})
			return "200"
		}
	}

	cmd := placing.PlaceOrderCommand{
		Order:     toUnvalidated(orderID, req),
		Timestamp: time.Now().UTC(),
		UserID:    strings.TrimSpace(r.Header.Get("X-User-ID")),
	}

	events, err := workflow.Place(ctx, cmd)
	outcome := placing.ClassifyError(err)
	placeMetrics.Placements.WithLabelValues(outcome).Inc()
	if err != nil {
		logging.Log(logging.Fields{Service: "order-service", OrderID: orderID, Stage: "place_order", Status: "rejected", ErrorKind: outcome, Message: err.Error()})
		code := statusForOutcome(outcome)
		writeJSON(w, code, map[string]any{"error": err.Error(), "outcome": outcome})
		return httpStatusLabel(code)
	}

	envelopes := contracts.FromDomain(events, cmd.Timestamp)
	if err := persistPlacement(ctx, pool, cfg.EventsTopic, orderID, idemKey, events, envelopes); err != nil {
		if errors.Is(err, errIdempotencyRace) && idemKey != "" {
			if existing, qerr := orderByIdempotencyKey(ctx, pool, idemKey); qerr == nil && existing != "" {
				writeJSON(w, http.StatusOK, placeOrderResponse{OrderID: existing, Status: "IDEMPOTENT_REPLAY"})
				return "200"
			}
		}
		logging.Log(logging.Fields{Service: "order-service", OrderID: orderID, Stage: "persist", Status: "error", Message: err.Error()})
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return "500"
	}

	logging.Log(logging.Fields{Service: "order-service", OrderID: orderID, Stage: "place_order", Status: "placed"})
	writeJSON(w, http.StatusOK, placeOrderResponse{OrderID: orderID, Status: "PLACED", Events: envelopes})
	return "200"
}

func statusForOutcome(outcome string) int {
	switch outcome {
	case placing.OutcomeValidationError:
		return http.StatusBadRequest
	case placing.OutcomePricingError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func httpStatusLabel(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "400"
	case http.StatusUnprocessableEntity:
		return "422"
	case http.StatusBadGateway:
		return "502"
	default:
		return "500"
	}
}

func toUnvalidated(orderID string, req placeOrderRequest) domain.UnvalidatedOrder {
	lines := make([]domain.UnvalidatedOrderLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, domain.UnvalidatedOrderLine{
			OrderLineID: l.OrderLineID,
			ProductCode: l.ProductCode,
			Quantity:    l.Quantity,
		})
	}
	return domain.UnvalidatedOrder{
		OrderID: orderID,
		CustomerInfo: domain.UnvalidatedCustomerInfo{
			FirstName:    req.CustomerInfo.FirstName,
			LastName:     req.CustomerInfo.LastName,
			EmailAddress: req.CustomerInfo.EmailAddress,
		},
		ShippingAddress: toUnvalidatedAddress(req.ShippingAddress),
		BillingAddress:  toUnvalidatedAddress(req.BillingAddress),
		Lines:           lines,
	}
}

func toUnvalidatedAddress(dto addressDTO) domain.UnvalidatedAddress {
	return domain.UnvalidatedAddress{
		AddressLine1: dto.AddressLine1,
		AddressLine2: dto.AddressLine2,
		AddressLine3: dto.AddressLine3,
		AddressLine4: dto.AddressLine4,
		City:         dto.City,
		ZipCode:      dto.ZipCode,
	}
}

// persistPlacement stores the order row, the idempotency key and the
// event envelopes in one transaction: a placement is either fully
// recorded or not at all.
func persistPlacement(ctx context.Context, pool *pgxpool.Pool, topic, orderID, idemKey string, events []domain.PlaceOrderEvent, envelopes []contracts.Event) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var priced domain.PricedOrder
	for _, evt := range events {
		if placed, ok := evt.(domain.OrderPlaced); ok {
			priced = placed.Order
		}
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`INSERT INTO orders(id, status, amount_to_bill) VALUES($1, $2, $3)`,
		orderID, "PLACED", priced.AmountToBill.Amount(),
	)
	if err != nil {
		return err
	}

	if idemKey != "" {
		_, err = tx.Exec(ctx,
			`INSERT INTO order_idempotency(idempotency_key, order_id) VALUES($1, $2)`,
			idemKey, orderID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return errIdempotencyRace
			}
			return err
		}
	}

	if err := outbox.InsertEventsTx(ctx, tx, topic, envelopes); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func orderByIdempotencyKey(ctx context.Context, pool *pgxpool.Pool, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	var orderID string
	err := pool.QueryRow(ctx, `SELECT order_id FROM order_idempotency WHERE idempotency_key=$1`, key).Scan(&orderID)
	if err != nil {
		return "", err
	}
	return orderID, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate") || strings.Contains(strings.ToLower(err.Error()), "unique")
}
