// Package transport exposes the HTTP query API and the websocket tip stream.
package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/meridianledger/explorer-backend/internal/chain"
	"github.com/meridianledger/explorer-backend/internal/model"
	"github.com/meridianledger/explorer-backend/internal/pagination"
	"github.com/meridianledger/explorer-backend/internal/resolver"
	"github.com/meridianledger/explorer-backend/internal/store"
	"github.com/meridianledger/explorer-backend/pkg/safe"
)

// Handler serves the query API.
type Handler struct {
	logger   *zap.Logger
	resolver *resolver.Resolver
	upgrader websocket.Upgrader
}

// NewHandler returns a Handler instance.
func NewHandler(r *resolver.Resolver, logger *zap.Logger) *Handler {
	return &Handler{
		logger:   logger.Named("transport"),
		resolver: r,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Router builds the HTTP route table.
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /v1/blocks/{id}", h.block)
	mux.HandleFunc("GET /v1/blocks/length/{length}", h.blocksByLength)
	mux.HandleFunc("GET /v1/transactions/{id}", h.transaction)
	mux.HandleFunc("GET /v1/branches", h.branches)
	mux.HandleFunc("GET /v1/branches/{id}", h.branch)
	mux.HandleFunc("GET /v1/tip", h.tip)
	mux.HandleFunc("GET /v1/tip/stream", h.tipStream)
	mux.HandleFunc("GET /v1/epochs/{epoch}", h.epoch)
	mux.HandleFunc("GET /v1/epochs/{epoch}/blocks", h.epochBlocks)
	mux.HandleFunc("GET /v1/addresses/{address}", h.address)
	mux.HandleFunc("GET /v1/addresses/{address}/transactions", h.addressTransactions)
	mux.HandleFunc("GET /v1/pools", h.stakePools)
	mux.HandleFunc("GET /v1/pools/{id}", h.stakePool)
	mux.HandleFunc("GET /v1/pools/{id}/blocks", h.poolBlocks)
	mux.HandleFunc("GET /v1/voteplans", h.votePlans)
	mux.HandleFunc("GET /v1/voteplans/{id}", h.votePlan)
	mux.HandleFunc("GET /v1/voteplans/{id}/proposals/{index}/votes", h.proposalVotes)
	mux.HandleFunc("GET /v1/settings", h.settings)

	return mux
}

func (h *Handler) writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("response encode failed", zap.Error(err))
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, chain.ErrUnknownBlock),
		errors.Is(err, chain.ErrUnknownBranch):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, resolver.ErrInvalidArgument),
		errors.Is(err, pagination.ErrInvalidCursor):
		w.WriteHeader(http.StatusBadRequest)
	default:
		h.logger.Error("request failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
	_ = json.NewEncoder(w).Encode(errorBody{Error: err.Error()})
}

// pageArgs extracts the connection arguments from the query string.
func pageArgs(r *http.Request) (pagination.Args, error) {
	var args pagination.Args
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  **int
	}{
		{"first", &args.First},
		{"last", &args.Last},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return args, errors.Join(resolver.ErrInvalidArgument, err)
		}
		*p.dst = &v
	}
	if v := q.Get("before"); v != "" {
		args.Before = &v
	}
	if v := q.Get("after"); v != "" {
		args.After = &v
	}
	return args, nil
}

// connEdge mirrors a pagination edge with the per-edge error rendered as a
// message instead of being dropped.
type connEdge[T any] struct {
	Node   T      `json:"node,omitempty"`
	Cursor string `json:"cursor"`
	Error  string `json:"error,omitempty"`
}

type connBody[T any] struct {
	Edges      []connEdge[T]       `json:"edges"`
	PageInfo   pagination.PageInfo `json:"pageInfo"`
	TotalCount int                 `json:"totalCount"`
}

func renderConnection[T any](c *pagination.Connection[T]) connBody[T] {
	body := connBody[T]{
		Edges:      make([]connEdge[T], 0, len(c.Edges)),
		PageInfo:   c.PageInfo,
		TotalCount: c.TotalCount,
	}
	for _, e := range c.Edges {
		edge := connEdge[T]{Node: e.Node, Cursor: e.Cursor}
		if e.Err != nil {
			edge.Error = e.Err.Error()
		}
		body.Edges = append(body.Edges, edge)
	}
	return body
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, map[string]string{"status": "ok"})
}

func (h *Handler) block(w http.ResponseWriter, r *http.Request) {
	b, err := h.resolver.Block(r.Context(), model.BlockID(r.PathValue("id")))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, b)
}

func (h *Handler) blocksByLength(w http.ResponseWriter, r *http.Request) {
	length, err := strconv.ParseUint(r.PathValue("length"), 10, 64)
	if err != nil {
		h.writeError(w, errors.Join(resolver.ErrInvalidArgument, err))
		return
	}
	blocks, err := h.resolver.BlocksByChainLength(r.Context(), model.ChainLength(length))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, blocks)
}

func (h *Handler) transaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.resolver.Transaction(r.Context(), model.TransactionID(r.PathValue("id")))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, tx)
}

func (h *Handler) branches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.resolver.Branches(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, branches)
}

func (h *Handler) branch(w http.ResponseWriter, r *http.Request) {
	br, err := h.resolver.Branch(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, br)
}

func (h *Handler) tip(w http.ResponseWriter, r *http.Request) {
	tip, err := h.resolver.Tip(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, tip)
}

// tipStream upgrades to a websocket and forwards the latest main tip: the
// current one on connect, then every change, skipping intermediates when the
// consumer lags.
func (h *Handler) tipStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("tip stream upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub := h.resolver.TipSubscribe()
	defer sub.Close()

	// Reader goroutine: consume control frames and detect the peer hanging up.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-gone:
			return
		case tip, ok := <-sub.C():
			if !ok {
				return
			}
			if err := conn.WriteJSON(tip); err != nil {
				h.logger.Debug("tip stream write failed", zap.Error(err))
				return
			}
		}
	}
}

func (h *Handler) parseEpoch(r *http.Request) (uint32, error) {
	raw, err := strconv.ParseUint(r.PathValue("epoch"), 10, 64)
	if err != nil {
		return 0, errors.Join(resolver.ErrInvalidArgument, err)
	}
	epoch, err := safe.Uint32(raw)
	if err != nil {
		return 0, errors.Join(resolver.ErrInvalidArgument, err)
	}
	return epoch, nil
}

func (h *Handler) epoch(w http.ResponseWriter, r *http.Request) {
	epoch, err := h.parseEpoch(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	view, err := h.resolver.Epoch(r.Context(), epoch)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, view)
}

func (h *Handler) epochBlocks(w http.ResponseWriter, r *http.Request) {
	epoch, err := h.parseEpoch(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	args, err := pageArgs(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	conn, err := h.resolver.EpochBlocks(r.Context(), epoch, args)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, renderConnection(conn))
}

func (h *Handler) address(w http.ResponseWriter, r *http.Request) {
	view, err := h.resolver.Address(r.Context(), r.PathValue("address"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, view)
}

func (h *Handler) addressTransactions(w http.ResponseWriter, r *http.Request) {
	args, err := pageArgs(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	conn, err := h.resolver.AddressTransactions(r.Context(), r.PathValue("address"), args)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, renderConnection(conn))
}

func (h *Handler) stakePools(w http.ResponseWriter, r *http.Request) {
	args, err := pageArgs(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	conn, err := h.resolver.StakePools(r.Context(), args)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, renderConnection(conn))
}

func (h *Handler) stakePool(w http.ResponseWriter, r *http.Request) {
	pool, err := h.resolver.StakePool(r.Context(), model.PoolID(r.PathValue("id")))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, pool)
}

func (h *Handler) poolBlocks(w http.ResponseWriter, r *http.Request) {
	args, err := pageArgs(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	conn, err := h.resolver.PoolBlocks(r.Context(), model.PoolID(r.PathValue("id")), args)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, renderConnection(conn))
}

func (h *Handler) votePlans(w http.ResponseWriter, r *http.Request) {
	args, err := pageArgs(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	conn, err := h.resolver.VotePlans(r.Context(), args)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, renderConnection(conn))
}

func (h *Handler) votePlan(w http.ResponseWriter, r *http.Request) {
	vp, err := h.resolver.VotePlan(r.Context(), model.VotePlanID(r.PathValue("id")))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, vp)
}

func (h *Handler) proposalVotes(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		h.writeError(w, errors.Join(resolver.ErrInvalidArgument, err))
		return
	}
	args, err := pageArgs(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	conn, err := h.resolver.ProposalVotes(r.Context(), model.VotePlanID(r.PathValue("id")), index, args)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, renderConnection(conn))
}

func (h *Handler) settings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.resolver.Settings(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, settings)
}
