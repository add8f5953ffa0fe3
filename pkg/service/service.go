// Package service ties the codec, the request signer, a node transport and
// the event channel together for one chain and one contract.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/doodlepoker/waspclient/pkg/codec"
	"github.com/doodlepoker/waspclient/pkg/events"
	"github.com/doodlepoker/waspclient/pkg/journal"
	"github.com/doodlepoker/waspclient/pkg/log"
	"github.com/doodlepoker/waspclient/pkg/metrics"
	"github.com/doodlepoker/waspclient/pkg/request"
	"github.com/doodlepoker/waspclient/pkg/sign"
)

var (
	ErrNoTransport    = errors.New("no transport")
	ErrNoWallet       = errors.New("on-ledger request without a wallet service")
	ErrNoTransaction  = errors.New("wallet returned no transaction id")
	ErrNoEventChannel = errors.New("no event channel configured")
	ErrStarted        = errors.New("service already started")
)

// Transport is the node API used by a Service. *wasp.Client implements it.
type Transport interface {
	CallView(ctx context.Context, chainID codec.ChainID, contract codec.Hname, view string, args *codec.Arguments) (*codec.Results, error)
	PostOffLedgerRequest(ctx context.Context, chainID codec.ChainID, signed []byte) error
	ExecuteRequest(ctx context.Context, chainID codec.ChainID, reqID codec.RequestID) error
	WaitRequest(ctx context.Context, chainID codec.ChainID, reqID codec.RequestID) error
}

// Journal records submitted requests. *journal.Store implements it.
type Journal interface {
	Record(ctx context.Context, e journal.Entry) error
}

// Config identifies the chain and contract a Service talks to.
type Config struct {
	ChainID  codec.ChainID
	Contract codec.Hname

	// EventsURL is the event channel template; %chainId is replaced by ChainID.
	// Leave it empty to run without events.
	EventsURL      string
	ReconnectDelay time.Duration
}

// Func is a state-changing call of a contract entry point.
type Func struct {
	Name     string
	HFunc    codec.Hname // derived from Name when zero
	Contract codec.Hname // the service contract when zero
	Args     *codec.Arguments
	Transfer *codec.Transfer
	OnLedger bool
	Address  codec.Address // on-ledger sender; the key pair address when zero
	Nonce    uint64        // off-ledger nonce; the clock when zero
}

func (f Func) hname() codec.Hname {
	if f.HFunc != 0 {
		return f.HFunc
	}
	return codec.HnameFromName(f.Name)
}

// View is a read-only call of a contract entry point.
type View struct {
	Name     string
	Contract codec.Hname // the service contract when zero
	Args     *codec.Arguments
}

// PostResult identifies a submitted request. RequestID is set for off-ledger
// requests and TransactionID for on-ledger ones.
type PostResult struct {
	RequestID     codec.RequestID
	TransactionID string
}

// Caller posts funcs and calls views. Contract bindings take a Caller so
// they can be driven by a Service or by a fake in tests.
type Caller interface {
	Post(ctx context.Context, f Func) (PostResult, error)
	Call(ctx context.Context, v View) (*codec.Results, error)
}

var _ Caller = (*Service)(nil)

type keyPair struct{ signer sign.Signer }

type Service struct {
	id        string
	cfg       Config
	transport Transport
	wallet    request.WalletService
	journal   Journal
	metrics   *metrics.Metrics
	lg        log.Logger

	keyPair    atomic.Pointer[keyPair]
	registry   *events.Registry
	dispatcher *events.Dispatcher

	mu      sync.Mutex
	started bool
	done    chan struct{}
}

type Option func(*Service)

func WithWallet(w request.WalletService) Option { return func(s *Service) { s.wallet = w } }
func WithJournal(j Journal) Option              { return func(s *Service) { s.journal = j } }
func WithMetrics(m *metrics.Metrics) Option     { return func(s *Service) { s.metrics = m } }
func WithRegistry(r *events.Registry) Option    { return func(s *Service) { s.registry = r } }

func WithKeyPair(signer sign.Signer) Option {
	return func(s *Service) { s.SetKeyPair(signer) }
}

func WithLogger(lg log.Logger) Option {
	return func(s *Service) {
		if lg != nil {
			s.lg = lg
		}
	}
}

// New creates a Service. Events are only received after Start.
func New(cfg Config, transport Transport, opts ...Option) (*Service, error) {
	if transport == nil {
		return nil, ErrNoTransport
	}
	s := &Service{
		id:        uuid.NewString(),
		cfg:       cfg,
		transport: transport,
		lg:        log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.lg = s.lg.WithName("service").WithKV("service", s.id).WithKV("contract", cfg.Contract.String())

	var eventOpts []events.Option
	eventOpts = append(eventOpts, events.WithLogger(s.lg))
	if s.metrics != nil {
		eventOpts = append(eventOpts, events.WithRecorder(s.metrics))
	}
	if s.registry == nil {
		s.registry = events.NewRegistry(eventOpts...)
	}
	if cfg.EventsURL != "" {
		s.dispatcher = events.NewDispatcher(events.DispatcherConfig{
			URL:            events.ExpandURL(cfg.EventsURL, cfg.ChainID.String()),
			ReconnectDelay: cfg.ReconnectDelay,
		}, s.registry, eventOpts...)
	}
	return s, nil
}

func (s *Service) ChainID() codec.ChainID   { return s.cfg.ChainID }
func (s *Service) Contract() codec.Hname    { return s.cfg.Contract }
func (s *Service) Events() *events.Registry { return s.registry }

// HasWallet reports whether on-ledger requests can be posted.
func (s *Service) HasWallet() bool { return s.wallet != nil }

// SetKeyPair replaces the key pair used to sign requests. nil, including a
// typed nil pointer, removes it.
func (s *Service) SetKeyPair(signer sign.Signer) {
	if sign.IsNil(signer) {
		s.keyPair.Store(nil)
		return
	}
	s.keyPair.Store(&keyPair{signer: signer})
}

// KeyPair returns the current key pair, or nil.
func (s *Service) KeyPair() sign.Signer {
	if kp := s.keyPair.Load(); kp != nil {
		return kp.signer
	}
	return nil
}

func (s *Service) contractOr(h codec.Hname) codec.Hname {
	if h != 0 {
		return h
	}
	return s.cfg.Contract
}

// Post signs and submits f. Mandatory arguments are checked before anything
// is signed or sent.
func (s *Service) Post(ctx context.Context, f Func) (PostResult, error) {
	kind := journal.KindOffLedger
	if f.OnLedger {
		kind = journal.KindOnLedger
	}
	lg := s.lg.WithKV("func", f.Name).WithKV("kind", kind)

	if err := f.Args.Validate(); err != nil {
		s.count(kind, f.Name, metrics.OutcomeInvalid)
		return PostResult{}, err
	}
	signer := s.KeyPair()
	if signer == nil {
		s.count(kind, f.Name, metrics.OutcomeSigning)
		return PostResult{}, request.ErrNoKeyPair
	}

	var (
		res   PostResult
		entry journal.Entry
		err   error
	)
	if f.OnLedger {
		res, entry, err = s.postOnLedger(ctx, f, signer)
	} else {
		res, entry, err = s.postOffLedger(ctx, f, signer)
	}
	if err != nil {
		lg.Warn("Post failed", "error", err)
		return PostResult{}, err
	}
	s.count(kind, f.Name, metrics.OutcomeSuccess)
	lg.Info("Request posted", "requestID", entry.RequestID, "transactionID", entry.TransactionID)

	if s.journal != nil {
		entry.Kind = kind
		entry.ChainID = s.cfg.ChainID.String()
		entry.Contract = s.contractOr(f.Contract).String()
		entry.Entrypoint = f.Name
		if err := s.journal.Record(ctx, entry); err != nil {
			lg.Warn("Failed to journal request", "error", err)
		}
	}
	return res, nil
}

func (s *Service) postOffLedger(ctx context.Context, f Func, signer sign.Signer) (PostResult, journal.Entry, error) {
	var opts []request.Option
	if f.Nonce != 0 {
		opts = append(opts, request.WithNonce(f.Nonce))
	}
	req := request.NewOffLedger(s.contractOr(f.Contract), f.hname(), f.Args, f.Transfer, opts...)
	if err := req.Sign(signer); err != nil {
		s.count(journal.KindOffLedger, f.Name, metrics.OutcomeSigning)
		return PostResult{}, journal.Entry{}, err
	}
	signed, err := req.Bytes()
	if err != nil {
		return PostResult{}, journal.Entry{}, err
	}
	reqID, err := req.ID()
	if err != nil {
		return PostResult{}, journal.Entry{}, err
	}

	if err := s.transport.PostOffLedgerRequest(ctx, s.cfg.ChainID, signed); err != nil {
		s.count(journal.KindOffLedger, f.Name, metrics.OutcomeTransport)
		return PostResult{}, journal.Entry{}, fmt.Errorf("post %s: %w", f.Name, err)
	}
	if err := s.transport.ExecuteRequest(ctx, s.cfg.ChainID, reqID); err != nil {
		s.count(journal.KindOffLedger, f.Name, metrics.OutcomeTransport)
		return PostResult{}, journal.Entry{}, fmt.Errorf("execute %s: %w", f.Name, err)
	}

	return PostResult{RequestID: reqID}, journal.Entry{
		RequestID: reqID.String(),
		Nonce:     req.Nonce(),
		Sender:    req.SenderAddress().String(),
	}, nil
}

func (s *Service) postOnLedger(ctx context.Context, f Func, signer sign.Signer) (PostResult, journal.Entry, error) {
	if s.wallet == nil {
		s.count(journal.KindOnLedger, f.Name, metrics.OutcomeTransport)
		return PostResult{}, journal.Entry{}, ErrNoWallet
	}
	sender := f.Address
	if sender == (codec.Address{}) {
		sender = signer.PublicKey().Address()
	}
	payload := request.OnLedgerPayload{
		Contract:   s.contractOr(f.Contract),
		Entrypoint: f.hname(),
		Args:       f.Args,
		Transfer:   f.Transfer,
		Sender:     sender,
	}
	txID, err := s.wallet.SendOnLedgerRequest(ctx, signer, s.cfg.ChainID, payload, f.Transfer.Get(codec.IOTAColor))
	if err != nil {
		s.count(journal.KindOnLedger, f.Name, metrics.OutcomeTransport)
		return PostResult{}, journal.Entry{}, fmt.Errorf("post %s on ledger: %w", f.Name, err)
	}
	if txID == "" {
		s.count(journal.KindOnLedger, f.Name, metrics.OutcomeTransport)
		return PostResult{}, journal.Entry{}, ErrNoTransaction
	}
	return PostResult{TransactionID: txID}, journal.Entry{TransactionID: txID, Sender: sender.String()}, nil
}

// Call runs the view v. It never signs.
func (s *Service) Call(ctx context.Context, v View) (*codec.Results, error) {
	if err := v.Args.Validate(); err != nil {
		s.count("view", v.Name, metrics.OutcomeInvalid)
		return nil, err
	}
	res, err := s.transport.CallView(ctx, s.cfg.ChainID, s.contractOr(v.Contract), v.Name, v.Args)
	if err != nil {
		s.count("view", v.Name, metrics.OutcomeTransport)
		return nil, fmt.Errorf("call %s: %w", v.Name, err)
	}
	s.count("view", v.Name, metrics.OutcomeSuccess)
	return res, nil
}

// WaitRequest blocks until the node has processed reqID.
func (s *Service) WaitRequest(ctx context.Context, reqID codec.RequestID) error {
	if err := s.transport.WaitRequest(ctx, s.cfg.ChainID, reqID); err != nil {
		return fmt.Errorf("wait %s: %w", reqID, err)
	}
	return nil
}

// Start runs the event channel in the background until ctx is cancelled or
// Close is called.
func (s *Service) Start(ctx context.Context) error {
	if s.dispatcher == nil {
		return ErrNoEventChannel
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrStarted
	}
	s.started = true
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		if err := s.dispatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.lg.Warn("Event channel stopped", "error", err)
		}
	}()
	return nil
}

// Dispatcher returns the event channel, or nil when none is configured.
func (s *Service) Dispatcher() *events.Dispatcher { return s.dispatcher }

// Close stops the event channel and waits for it to exit.
func (s *Service) Close() error {
	if s.dispatcher == nil {
		return nil
	}
	err := s.dispatcher.Close()

	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
	return err
}

func (s *Service) count(kind, name, outcome string) {
	if s.metrics != nil {
		s.metrics.RequestCompleted(kind, name, outcome)
	}
}
