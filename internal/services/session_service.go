package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/brendimo/spinwheel-backend/internal/config"
	"github.com/brendimo/spinwheel-backend/internal/models"
	"github.com/brendimo/spinwheel-backend/internal/utils"
	"github.com/brendimo/spinwheel-backend/pkg/promoapi"
)

// Localized UI messages, kept verbatim from the promo site
const (
	MsgNameRequired   = "Tam ad daxil edin"
	MsgPhoneInvalid   = "WhatsApp nömrəsini düzgün daxil edin"
	MsgNotAllowed     = "Bu nömrə üçün bu gün icazə yoxdur"
	MsgTransportError = "Server ilə əlaqə zamanı xəta baş verdi"
	MsgLogError       = "Serverə yazılarkən xəta oldu"
	MsgNoSession      = "Əvvəlcə formu doldurun və serverə göndərin"
)

var (
	// ErrNoSession is returned when a spin is triggered without a prior
	// successful eligibility check
	ErrNoSession = errors.New(MsgNoSession)
	// ErrSpinInFlight is returned when a spin trigger arrives while another
	// spin is still running; excess triggers are dropped, not queued
	ErrSpinInFlight = errors.New("spin already in progress")
	// ErrWheelDisabled is returned once the server has denied further spins;
	// only a fresh eligibility check can clear it
	ErrWheelDisabled = errors.New("wheel is disabled for this session")
)

// ValidationError reports a rejected name or phone input. No remote call is
// made when validation fails.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// EligibilityError reports a denial from the remote service, carrying the
// server-supplied message verbatim
type EligibilityError struct {
	Message string
}

func (e *EligibilityError) Error() string { return e.Message }

// SessionService coordinates the wheel flow: validate input, check
// eligibility, select a prize, log the outcome and update the ledger. It is
// the single source of truth for whether a session may spin.
type SessionService interface {
	Submit(ctx context.Context, name, rawPhone string) (*models.SessionContext, error)
	Spin(ctx context.Context, rawPhone string) (*models.SpinResult, error)
	Claim(ctx context.Context, rawPhone string) error
	History(ctx context.Context, rawPhone string) ([]models.SpinRecord, error)
	CleanupExpired()
}

type sessionService struct {
	promo     promoapi.API
	ledger    LedgerService
	selection SelectionService
	wheel     config.WheelConfig
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*models.SessionContext // key: normalized phone
}

// NewSessionService creates a new SessionService implementation
func NewSessionService(promo promoapi.API, ledger LedgerService, selection SelectionService, wheel config.WheelConfig) SessionService {
	return NewSessionServiceWithClock(promo, ledger, selection, wheel, time.Now)
}

// NewSessionServiceWithClock creates a SessionService with an explicit clock
func NewSessionServiceWithClock(promo promoapi.API, ledger LedgerService, selection SelectionService, wheel config.WheelConfig, now func() time.Time) SessionService {
	return &sessionService{
		promo:     promo,
		ledger:    ledger,
		selection: selection,
		wheel:     wheel,
		now:       now,
		sessions:  make(map[string]*models.SessionContext),
	}
}

// Submit validates the visitor's form input and asks the remote service
// whether this phone may spin today. A session exists only after an allowed
// check; a denial leaves the wheel disabled and the form resubmittable. A
// resubmit while a spin for the same phone is still running is refused, so
// the in-flight spin cannot be displaced by a fresh session.
func (s *sessionService) Submit(ctx context.Context, name, rawPhone string) (*models.SessionContext, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < 2 {
		return nil, &ValidationError{Message: MsgNameRequired}
	}
	phone := utils.NormalizePhone(rawPhone, s.wheel.CountryCode)
	if !utils.ValidatePhone(phone) {
		return nil, &ValidationError{Message: MsgPhoneInvalid}
	}

	// Park the session in CHECKING while the remote call runs. Spin refuses
	// CHECKING sessions, so the check cannot race an incoming trigger.
	s.mu.Lock()
	if sess, ok := s.sessions[phone]; ok {
		if sess.State == models.SessionSpinning || sess.State == models.SessionAwaitingLog {
			s.mu.Unlock()
			return nil, ErrSpinInFlight
		}
	}
	s.sessions[phone] = &models.SessionContext{
		Phone:        phone,
		Name:         name,
		State:        models.SessionChecking,
		LastActivity: s.now(),
	}
	s.mu.Unlock()

	resp, err := s.promo.Check(ctx, name, phone)
	if err != nil {
		s.mu.Lock()
		delete(s.sessions, phone)
		s.mu.Unlock()
		return nil, fmt.Errorf("%s: %w", MsgTransportError, err)
	}

	if !resp.Allowed {
		msg := resp.Message
		if msg == "" {
			msg = MsgNotAllowed
		}
		s.mu.Lock()
		delete(s.sessions, phone)
		s.mu.Unlock()
		return nil, &EligibilityError{Message: msg}
	}

	spinNumber := resp.SpinNumber
	if spinNumber == 0 {
		spinNumber = 1
	}
	sess := &models.SessionContext{
		Phone:            phone,
		Name:             name,
		ServerSpinNumber: spinNumber,
		FirstSpin:        resp.FirstSpin,
		State:            models.SessionReady,
		LastActivity:     s.now(),
	}

	s.mu.Lock()
	s.sessions[phone] = sess
	s.mu.Unlock()

	out := *sess
	return &out, nil
}

// Spin runs a single spin for an established session. The spin-of-the-day
// ordinal comes from the local ledger and drives prize selection only; the
// server's AllowedNextSpin answer alone decides whether the wheel re-enables.
// On a log transport failure the chosen outcome is still returned alongside
// the error, with Logged set to false and the session disabled.
func (s *sessionService) Spin(ctx context.Context, rawPhone string) (*models.SpinResult, error) {
	phone := utils.NormalizePhone(rawPhone, s.wheel.CountryCode)

	s.mu.Lock()
	sess, ok := s.sessions[phone]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	switch sess.State {
	case models.SessionChecking:
		// eligibility not confirmed yet
		s.mu.Unlock()
		return nil, ErrNoSession
	case models.SessionSpinning, models.SessionAwaitingLog:
		s.mu.Unlock()
		return nil, ErrSpinInFlight
	case models.SessionDisabled:
		s.mu.Unlock()
		return nil, ErrWheelDisabled
	}
	sess.State = models.SessionSpinning
	sess.LastActivity = s.now()
	name := sess.Name
	serverSpin := sess.ServerSpinNumber
	s.mu.Unlock()

	ordinal := s.ledger.CountSpinsToday(ctx, phone) + 1
	gift := s.selection.SelectPrize(ctx, ordinal)

	s.setState(phone, models.SessionAwaitingLog)

	resp, err := s.promo.Log(ctx, promoapi.LogRequest{
		Name:       name,
		Phone:      phone,
		SpinNumber: serverSpin,
		GiftName:   gift.Name,
		Tier:       string(gift.Tier),
	})
	if err != nil {
		// The outcome was chosen here but may not have reached the server;
		// surface it anyway and keep the wheel disabled.
		s.setState(phone, models.SessionDisabled)
		result := &models.SpinResult{
			Gift:       gift,
			Ordinal:    ordinal,
			SpinNumber: serverSpin,
			Logged:     false,
			Message:    MsgLogError,
		}
		return result, fmt.Errorf("%s: %w", MsgLogError, err)
	}

	recordedSpin := resp.SpinNumber
	if recordedSpin == 0 {
		recordedSpin = serverSpin
	}
	record := models.SpinRecord{
		Date:       s.now(),
		SpinNumber: recordedSpin,
		GiftID:     gift.ID,
		GiftName:   gift.Name,
		Tier:       gift.Tier,
	}
	if _, err := s.ledger.AppendSpin(ctx, phone, name, record); err != nil {
		// local history only; the server already has the spin
		log.Printf("ledger append for %s failed: %v", phone, err)
	}

	s.mu.Lock()
	if sess, ok := s.sessions[phone]; ok {
		sess.ServerSpinNumber = serverSpin + 1
		sess.FirstSpin = false
		sess.LastActivity = s.now()
		if resp.AllowedNextSpin {
			sess.State = models.SessionReady
		} else {
			sess.State = models.SessionDisabled
		}
	}
	s.mu.Unlock()

	return &models.SpinResult{
		Gift:            gift,
		Ordinal:         ordinal,
		SpinNumber:      recordedSpin,
		AllowedNextSpin: resp.AllowedNextSpin,
		Logged:          true,
		Message:         resp.Message,
	}, nil
}

// Claim flags the most recent spin for a phone as taken
func (s *sessionService) Claim(ctx context.Context, rawPhone string) error {
	phone := utils.NormalizePhone(rawPhone, s.wheel.CountryCode)
	return s.ledger.MarkLastTaken(ctx, phone)
}

// History returns the spin history for a phone, newest first
func (s *sessionService) History(ctx context.Context, rawPhone string) ([]models.SpinRecord, error) {
	phone := utils.NormalizePhone(rawPhone, s.wheel.CountryCode)
	return s.ledger.History(ctx, phone), nil
}

// CleanupExpired drops sessions idle for longer than the configured TTL
func (s *sessionService) CleanupExpired() {
	ttl := time.Duration(s.wheel.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	for phone, sess := range s.sessions {
		if sess.LastActivity.Before(cutoff) {
			delete(s.sessions, phone)
		}
	}
}

func (s *sessionService) setState(phone string, state models.SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[phone]; ok {
		sess.State = state
	}
}
