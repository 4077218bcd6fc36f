// Package httpapi exposes the ledger engine over HTTP. The API surface maps
// one route per engine operation; all business rules live in the usecases
// and this layer only decodes, dispatches, and maps errors to status codes.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/slinghq/sling-backend/internal/domain"
	"github.com/slinghq/sling-backend/internal/usecase/converter"
	"github.com/slinghq/sling-backend/internal/usecase/holdings"
	"github.com/slinghq/sling-backend/internal/usecase/ledger"
	"github.com/slinghq/sling-backend/internal/usecase/quote"
	"github.com/slinghq/sling-backend/internal/usecase/split"
	"github.com/slinghq/sling-backend/internal/usecase/transfer"
)

// SavingsInstrumentID is the yield token backing the savings product
const SavingsInstrumentID = "USDY"

// timeLayout is the wire format for activity dates
const timeLayout = time.RFC3339

func now() time.Time { return time.Now() }

// Server wires the engine's services to HTTP routes for the default account
type Server struct {
	Ledger       *ledger.Service
	Holdings     *holdings.Service
	Converter    *converter.Service
	Transfers    *transfer.Service
	ActivityRepo domain.ActivityRepository
	Prices       quote.PriceProvider
	Quotes       *quote.Registry
	QuoteWindow  int
	AccountID    uuid.UUID
	BaseCurrency string
	APIToken     string
	Logger       *logrus.Logger
}

// NewServer creates a new Server instance
func NewServer(
	ledgerService *ledger.Service,
	holdingsService *holdings.Service,
	converterService *converter.Service,
	transferService *transfer.Service,
	activityRepo domain.ActivityRepository,
	priceFeed quote.PriceProvider,
	quoteRegistry *quote.Registry,
	quoteWindow int,
	accountID uuid.UUID,
	baseCurrency, apiToken string,
	logger *logrus.Logger,
) *Server {
	return &Server{
		Ledger:       ledgerService,
		Holdings:     holdingsService,
		Converter:    converterService,
		Transfers:    transferService,
		ActivityRepo: activityRepo,
		Prices:       priceFeed,
		Quotes:       quoteRegistry,
		QuoteWindow:  quoteWindow,
		AccountID:    accountID,
		BaseCurrency: baseCurrency,
		APIToken:     apiToken,
		Logger:       logger,
	}
}

// Router builds the chi router with middleware and all engine routes
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestLogger(s.Logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(AuthMiddleware(s.APIToken))

		r.Get("/balance", s.handleBalance)
		r.Post("/ledger/credit", s.handleCredit)
		r.Post("/ledger/debit", s.handleDebit)

		r.Post("/transfers/send", s.handleSend)
		r.Post("/transfers/receive", s.handleReceive)

		r.Post("/splits/calculate", s.handleCalculateSplit)
		r.Post("/splits/request", s.handleRequestSplit)
		r.Post("/splits/settle", s.handleSettleSplit)

		r.Post("/holdings/buy", s.handleBuy)
		r.Post("/holdings/sell", s.handleSell)
		r.Get("/holdings/{instrumentID}/value", s.handleHoldingValue)
		r.Get("/holdings/{instrumentID}/pnl", s.handleHoldingPnL)

		r.Post("/savings/deposit", s.handleSavingsDeposit)
		r.Post("/savings/withdraw", s.handleSavingsWithdraw)

		r.Get("/quotes/{instrumentID}", s.handleQuote)
		r.Post("/quotes/{instrumentID}/open", s.handleQuoteOpen)
		r.Get("/quote-sessions/{sessionID}", s.handleQuoteSession)
		r.Post("/quote-sessions/{sessionID}/tick", s.handleQuoteTick)
		r.Post("/quote-sessions/{sessionID}/pause", s.handleQuotePause)
		r.Post("/quote-sessions/{sessionID}/resume", s.handleQuoteResume)
		r.Post("/quote-sessions/{sessionID}/consume", s.handleQuoteConsume)

		r.Get("/convert", s.handleConvert)
		r.Get("/currencies/{code}/symbol", s.handleSymbol)

		r.Get("/activity", s.handleActivity)
	})

	return r
}

// moneyPayload is the wire form of a Money value; amounts travel as strings
// so no float64 ever touches a money path
type moneyPayload struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func toPayload(m domain.Money) moneyPayload {
	return moneyPayload{Amount: m.Amount.String(), Currency: m.Currency}
}

func (p moneyPayload) toMoney() (domain.Money, error) {
	return domain.NewMoneyFromString(p.Amount, p.Currency)
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := s.Ledger.Balance(r.Context(), s.AccountID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"balance":   toPayload(balance),
		"formatted": balance.String(),
	})
}

type mutationRequest struct {
	Amount moneyPayload `json:"amount"`
	Title  string       `json:"title"`
	Note   string       `json:"note"`
}

func (s *Server) handleCredit(w http.ResponseWriter, r *http.Request) {
	s.handleMutation(w, r, domain.DirectionIncoming)
}

func (s *Server) handleDebit(w http.ResponseWriter, r *http.Request) {
	s.handleMutation(w, r, domain.DirectionOutgoing)
}

func (s *Server) handleMutation(w http.ResponseWriter, r *http.Request, direction domain.ActivityDirection) {
	var req mutationRequest
	if !decode(w, r, &req) {
		return
	}
	amount, err := req.Amount.toMoney()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	title := req.Title
	if title == "" {
		if direction == domain.DirectionIncoming {
			title = "Added money"
		} else {
			title = "Withdrew money"
		}
	}
	activity := &domain.ActivityRecord{
		TitleLeft:    title,
		SubtitleLeft: req.Note,
		TitleRight:   amount.String(),
		Amount:       amount,
		Direction:    direction,
		Date:         now(),
	}

	if direction == domain.DirectionIncoming {
		err = s.Ledger.Credit(r.Context(), s.AccountID, amount, activity)
	} else {
		err = s.Ledger.Debit(r.Context(), s.AccountID, amount, activity)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}

	balance, err := s.Ledger.Balance(r.Context(), s.AccountID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"balance": toPayload(balance)})
}

type transferRequest struct {
	Counterparty string       `json:"counterparty"`
	PayeeKind    string       `json:"payeeKind"`
	Amount       moneyPayload `json:"amount"`
	Note         string       `json:"note"`
}

type transferResponse struct {
	ID            string       `json:"id"`
	Status        string       `json:"status"`
	BaseAmount    moneyPayload `json:"baseAmount"`
	DisplayAmount moneyPayload `json:"displayAmount"`
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !decode(w, r, &req) {
		return
	}
	amount, err := req.Amount.toMoney()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tr, err := s.Transfers.Send(r.Context(), transfer.SendInput{
		AccountID:    s.AccountID,
		Counterparty: req.Counterparty,
		PayeeKind:    domain.PayeeKind(req.PayeeKind),
		Amount:       amount,
		Note:         req.Note,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond(w, http.StatusOK, transferToResponse(tr))
}

func (s *Server) handleReceive(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if !decode(w, r, &req) {
		return
	}
	amount, err := req.Amount.toMoney()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tr, err := s.Transfers.Receive(r.Context(), transfer.ReceiveInput{
		AccountID:    s.AccountID,
		Counterparty: req.Counterparty,
		PayeeKind:    domain.PayeeKind(req.PayeeKind),
		Amount:       amount,
		Note:         req.Note,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond(w, http.StatusOK, transferToResponse(tr))
}

func transferToResponse(tr *domain.Transfer) transferResponse {
	return transferResponse{
		ID:            tr.ID.String(),
		Status:        string(tr.Status),
		BaseAmount:    toPayload(tr.BaseAmount),
		DisplayAmount: toPayload(tr.DisplayAmount),
	}
}

type splitRequest struct {
	Total    moneyPayload `json:"total"`
	Contacts []string     `json:"contacts"`
	Note     string       `json:"note"`
}

type calculateSplitRequest struct {
	Total            moneyPayload `json:"total"`
	ParticipantCount int          `json:"participantCount"`
}

// handleCalculateSplit previews an equal split without recording anything
func (s *Server) handleCalculateSplit(w http.ResponseWriter, r *http.Request) {
	var req calculateSplitRequest
	if !decode(w, r, &req) {
		return
	}
	total, err := req.Total.toMoney()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	share, err := split.SplitEqually(total, req.ParticipantCount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond(w, http.StatusOK, splitToResponse(share))
}

func (s *Server) handleRequestSplit(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if !decode(w, r, &req) {
		return
	}
	total, err := req.Total.toMoney()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	share, err := s.Transfers.RequestSplit(r.Context(), transfer.RequestSplitInput{
		AccountID: s.AccountID,
		Total:     total,
		Contacts:  req.Contacts,
		Note:      req.Note,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	respond(w, http.StatusOK, splitToResponse(share))
}

func splitToResponse(share *domain.SplitShare) map[string]any {
	shares := make([]moneyPayload, len(share.Shares))
	for i, sh := range share.Shares {
		shares[i] = toPayload(sh)
	}
	return map[string]any{
		"participantCount": share.ParticipantCount,
		"perPerson":        toPayload(share.PerPerson),
		"shares":           shares,
	}
}

type settleRequest struct {
	Contact string       `json:"contact"`
	Amount  moneyPayload `json:"amount"`
}

func (s *Server) handleSettleSplit(w http.ResponseWriter, r *http.Request) {
	var req settleRequest
	if !decode(w, r, &req) {
		return
	}
	amount, err := req.Amount.toMoney()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tr, err := s.Transfers.SettleSplitShare(r.Context(), s.AccountID, req.Contact, amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond(w, http.StatusOK, transferToResponse(tr))
}

type tradeRequest struct {
	InstrumentID string       `json:"instrumentId"`
	Shares       string       `json:"shares"`
	Amount       moneyPayload `json:"amount"`
	Price        moneyPayload `json:"price"`
}

type holdingResponse struct {
	InstrumentID string       `json:"instrumentId"`
	Shares       string       `json:"shares"`
	CostBasis    moneyPayload `json:"costBasis"`
	AveragePrice moneyPayload `json:"averagePrice"`
}

func holdingToResponse(h *domain.Holding) holdingResponse {
	return holdingResponse{
		InstrumentID: h.InstrumentID,
		Shares:       h.Shares.String(),
		CostBasis:    toPayload(h.CostBasis),
		AveragePrice: toPayload(h.AveragePrice()),
	}
}

// handleBuy buys either a share count or a cash amount, whichever the
// request carries; a share count wins when both are present
func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if !decode(w, r, &req) {
		return
	}
	price, err := req.Price.toMoney()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var holding *domain.Holding
	if req.Shares != "" {
		shares, err := decimal.NewFromString(req.Shares)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid share count")
			return
		}
		holding, err = s.Holdings.Buy(r.Context(), s.AccountID, req.InstrumentID, shares, price)
		if err != nil {
			writeDomainError(w, err)
			return
		}
	} else {
		amount, err := req.Amount.toMoney()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		holding, err = s.Holdings.BuyAmount(r.Context(), s.AccountID, req.InstrumentID, amount, price)
		if err != nil {
			writeDomainError(w, err)
			return
		}
	}

	respond(w, http.StatusOK, holdingToResponse(holding))
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if !decode(w, r, &req) {
		return
	}
	price, err := req.Price.toMoney()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	shares, err := decimal.NewFromString(req.Shares)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid share count")
		return
	}

	holding, err := s.Holdings.Sell(r.Context(), s.AccountID, req.InstrumentID, shares, price)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond(w, http.StatusOK, holdingToResponse(holding))
}

func (s *Server) handleHoldingValue(w http.ResponseWriter, r *http.Request) {
	s.handleHoldingMetric(w, r, s.Holdings.CurrentValue)
}

func (s *Server) handleHoldingPnL(w http.ResponseWriter, r *http.Request) {
	s.handleHoldingMetric(w, r, s.Holdings.UnrealizedPnL)
}

func (s *Server) handleHoldingMetric(
	w http.ResponseWriter,
	r *http.Request,
	metric func(ctx context.Context, accountID uuid.UUID, instrumentID string, price domain.Money) (domain.Money, error),
) {
	instrumentID := chi.URLParam(r, "instrumentID")
	priceStr := r.URL.Query().Get("price")
	priceDec, err := decimal.NewFromString(priceStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid price")
		return
	}
	price := domain.NewMoney(priceDec, s.BaseCurrency)

	value, err := metric(r.Context(), s.AccountID, instrumentID, price)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{"value": toPayload(value)})
}

type savingsRequest struct {
	Amount     moneyPayload `json:"amount"`
	Tokens     string       `json:"tokens"`
	TokenPrice moneyPayload `json:"tokenPrice"`
}

func (s *Server) handleSavingsDeposit(w http.ResponseWriter, r *http.Request) {
	var req savingsRequest
	if !decode(w, r, &req) {
		return
	}
	amount, err := req.Amount.toMoney()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tokenPrice, err := req.TokenPrice.toMoney()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	holding, err := s.Holdings.Deposit(r.Context(), s.AccountID, SavingsInstrumentID, amount, tokenPrice)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond(w, http.StatusOK, holdingToResponse(holding))
}

func (s *Server) handleSavingsWithdraw(w http.ResponseWriter, r *http.Request) {
	var req savingsRequest
	if !decode(w, r, &req) {
		return
	}
	tokens, err := decimal.NewFromString(req.Tokens)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid token amount")
		return
	}
	tokenPrice, err := req.TokenPrice.toMoney()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	holding, err := s.Holdings.Withdraw(r.Context(), s.AccountID, SavingsInstrumentID, tokens, tokenPrice)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond(w, http.StatusOK, holdingToResponse(holding))
}

// handleQuote returns a fresh time-boxed price snapshot for a confirmation
// screen. The window and refresh lifecycle are the client's to drive.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	instrumentID := chi.URLParam(r, "instrumentID")

	price, err := s.Prices.CurrentPrice(r.Context(), instrumentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	window := s.QuoteWindow
	if window <= 0 {
		window = domain.DefaultQuoteWindowSeconds
	}
	q := domain.Quote{
		InstrumentID:    instrumentID,
		Price:           price,
		IssuedAt:        now(),
		ValidForSeconds: window,
	}
	respond(w, http.StatusOK, map[string]any{
		"instrumentId":    q.InstrumentID,
		"price":           toPayload(q.Price),
		"issuedAt":        q.IssuedAt.Format(timeLayout),
		"validForSeconds": q.ValidForSeconds,
		"expiresAt":       q.ExpiresAt().Format(timeLayout),
	})
}

// handleQuoteOpen starts a server-side quote session: the opening price is
// fetched and the countdown begins. The returned session ID addresses the
// tick/pause/resume/consume routes.
func (s *Server) handleQuoteOpen(w http.ResponseWriter, r *http.Request) {
	instrumentID := chi.URLParam(r, "instrumentID")

	id, timer, err := s.Quotes.Open(r.Context(), instrumentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond(w, http.StatusOK, quoteSessionResponse(id, timer))
}

func (s *Server) handleQuoteSession(w http.ResponseWriter, r *http.Request) {
	id, timer, ok := s.quoteSession(w, r)
	if !ok {
		return
	}
	respond(w, http.StatusOK, quoteSessionResponse(id, timer))
}

func (s *Server) handleQuoteTick(w http.ResponseWriter, r *http.Request) {
	id, timer, ok := s.quoteSession(w, r)
	if !ok {
		return
	}
	timer.Tick(r.Context())
	respond(w, http.StatusOK, quoteSessionResponse(id, timer))
}

func (s *Server) handleQuotePause(w http.ResponseWriter, r *http.Request) {
	id, timer, ok := s.quoteSession(w, r)
	if !ok {
		return
	}
	timer.Pause()
	respond(w, http.StatusOK, quoteSessionResponse(id, timer))
}

func (s *Server) handleQuoteResume(w http.ResponseWriter, r *http.Request) {
	id, timer, ok := s.quoteSession(w, r)
	if !ok {
		return
	}
	timer.Resume()
	respond(w, http.StatusOK, quoteSessionResponse(id, timer))
}

// handleQuoteConsume locks in the session's current price; the confirmation
// executes at the returned price regardless of later movement
func (s *Server) handleQuoteConsume(w http.ResponseWriter, r *http.Request) {
	id, _, ok := s.quoteSession(w, r)
	if !ok {
		return
	}

	locked, err := s.Quotes.Consume(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"sessionId":    id.String(),
		"instrumentId": locked.InstrumentID,
		"price":        toPayload(locked.Price),
	})
}

// quoteSession resolves the session ID route param; on failure the error is
// already written and ok is false
func (s *Server) quoteSession(w http.ResponseWriter, r *http.Request) (uuid.UUID, *quote.Timer, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session ID")
		return uuid.Nil, nil, false
	}

	timer, err := s.Quotes.Get(id)
	if err != nil {
		writeDomainError(w, err)
		return uuid.Nil, nil, false
	}
	return id, timer, true
}

func quoteSessionResponse(id uuid.UUID, timer *quote.Timer) map[string]any {
	return map[string]any{
		"sessionId":        id.String(),
		"state":            string(timer.CurrentState()),
		"price":            toPayload(timer.CurrentPrice()),
		"secondsRemaining": timer.SecondsRemaining(),
		"refreshes":        timer.Refreshes(),
	}
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	amountStr := r.URL.Query().Get("amount")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	amountDec, err := decimal.NewFromString(amountStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	converted, err := s.Converter.Convert(r.Context(), domain.NewMoney(amountDec, from), to)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]any{
		"converted": toPayload(converted),
		"rounded":   toPayload(converted.Round()),
	})
}

func (s *Server) handleSymbol(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	respond(w, http.StatusOK, map[string]string{
		"code":   code,
		"symbol": s.Converter.SymbolFor(code),
	})
}

type activityResponse struct {
	Avatar        string       `json:"avatar"`
	TitleLeft     string       `json:"titleLeft"`
	SubtitleLeft  string       `json:"subtitleLeft"`
	TitleRight    string       `json:"titleRight"`
	SubtitleRight string       `json:"subtitleRight"`
	Amount        moneyPayload `json:"amount"`
	Direction     string       `json:"direction"`
	PayeeKind     string       `json:"payeeKind"`
	Date          string       `json:"date"`
}

// handleActivity lists activity most-recent-first, the feed's display order
func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	records, err := s.ActivityRepo.List(r.Context(), s.AccountID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	result := make([]activityResponse, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		result = append(result, activityResponse{
			Avatar:        record.Avatar,
			TitleLeft:     record.TitleLeft,
			SubtitleLeft:  record.SubtitleLeft,
			TitleRight:    record.TitleRight,
			SubtitleRight: record.SubtitleRight,
			Amount:        toPayload(record.Amount),
			Direction:     string(record.Direction),
			PayeeKind:     string(record.PayeeKind),
			Date:          record.Date.Format(timeLayout),
		})
	}
	respond(w, http.StatusOK, result)
}

// decode reads the JSON body into dst; on failure it answers 400 and returns false
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// respond writes a JSON response with the given status
func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError writes a JSON error body with the given status
func writeError(w http.ResponseWriter, status int, message string) {
	respond(w, status, map[string]string{"error": message})
}

// writeDomainError maps the business error taxonomy to HTTP status codes
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientShares):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidParticipantCount),
		errors.Is(err, domain.ErrCurrencyMismatch):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrHoldingNotFound),
		errors.Is(err, domain.ErrQuoteNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrQuoteConsumed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrRateUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
