package impl

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"time"

	"truefeedback/internal/domain"
	"truefeedback/internal/dto"
	"truefeedback/internal/observability/metrics"
	"truefeedback/internal/observability/middleware"
	"truefeedback/internal/service"
	"truefeedback/internal/store"
	"truefeedback/internal/validation"

)

const defaultCodeTTL = time.Hour

type AccountServiceImpl struct {
	Store           *store.Store
	PasswordService service.PasswordService
	TService        service.TokenService
	Email           service.EmailService
	CodeTTL         time.Duration
	Logger          *slog.Logger

	now     func() time.Time
	newCode func() (string, error)
}

func NewAccountServiceImpl(
	st *store.Store,
	passwordService service.PasswordService,
	tokenService service.TokenService,
	email service.EmailService,
	codeTTL time.Duration,
	logger *slog.Logger,
) *AccountServiceImpl {
	if codeTTL <= 0 {
		codeTTL = defaultCodeTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AccountServiceImpl{
		Store:           st,
		PasswordService: passwordService,
		TService:        tokenService,
		Email:           email,
		CodeTTL:         codeTTL,
		Logger:          logger,
		now:             time.Now,
		newCode:         newVerifyCode,
	}
}

func (a *AccountServiceImpl) SignUp(ctx context.Context, r dto.SignUpRequest) (resp *dto.SignUpResponse, err error) {
	defer func() { metrics.SignUpsTotal.WithLabelValues(metrics.Result(err)).Inc() }()

	if err := validation.Username(r.Username); err != nil {
		return nil, err
	}
	if err := validation.Email(r.Email); err != nil {
		return nil, err
	}
	if err := validation.Password(r.Password); err != nil {
		return nil, err
	}

	code, err := a.newCode()
	if err != nil {
		return nil, err
	}
	pw, err := a.PasswordService.Hash(r.Password)
	if err != nil {
		return nil, err
	}
	now := a.now().UTC()
	expiry := now.Add(a.CodeTTL)

	var acc *domain.Account
	err = a.Store.WithTx(ctx, func(tx *store.Store) error {
		byName, err := tx.Accounts().GetByUsername(ctx, r.Username)
		switch {
		case err == nil && byName.Verified:
			return domain.ErrUsernameTaken
		case err != nil && !errors.Is(err, store.ErrRecordNotFound):
			return err
		}

		byEmail, err := tx.Accounts().GetByEmail(ctx, r.Email)
		switch {
		case err == nil && byEmail.Verified:
			return domain.ErrEmailTaken
		case err != nil && !errors.Is(err, store.ErrRecordNotFound):
			return err
		}

		if byName != nil && (byEmail == nil || byName.ID != byEmail.ID) {
			// Another unverified registration holds the name until its code expires.
			if !byName.CodeExpired(now) {
				return domain.ErrUsernameTaken
			}
			if err := tx.Accounts().DeleteUnverified(ctx, byName.ID); err != nil {
				return err
			}
		}

		if byEmail != nil {
			// Unverified registration for this email: start it over under
			// the name asked for now.
			byEmail.Username = r.Username
			setPassword(byEmail, pw)
			byEmail.VerifyCode = code
			byEmail.VerifyCodeExpiry = expiry
			byEmail.UpdatedAt = now
			acc = byEmail
			return tx.Accounts().Update(ctx, byEmail)
		}
		acc = &domain.Account{
			ID:                domain.NewID(),
			Username:          r.Username,
			Email:             r.Email,
			VerifyCode:        code,
			VerifyCodeExpiry:  expiry,
			AcceptingMessages: true,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		setPassword(acc, pw)
		return tx.Accounts().Create(ctx, acc)
	})
	if err != nil {
		return nil, err
	}

	if err := a.Email.SendVerification(ctx, acc.Email, acc.Username, code); err != nil {
		a.logger(ctx).Error("verification email failed", "account_id", acc.ID, "error", err)
		return nil, errors.Join(ErrEmailDelivery, err)
	}
	a.logger(ctx).Info("account registered", "account_id", acc.ID, "username", acc.Username)
	return &dto.SignUpResponse{AccountID: acc.ID.String(), RequiresEmailVerification: true}, nil
}

func (a *AccountServiceImpl) VerifyCode(ctx context.Context, r dto.VerifyCodeRequest) (err error) {
	defer func() { metrics.VerificationsTotal.WithLabelValues(verifyResult(err)).Inc() }()

	if err := validation.VerifyCode(r.Code); err != nil {
		return err
	}
	acc, err := a.Store.Accounts().GetByUsername(ctx, r.Username)
	if errors.Is(err, store.ErrRecordNotFound) {
		return domain.ErrAccountNotFound
	}
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(acc.VerifyCode), []byte(r.Code)) != 1 {
		return domain.ErrIncorrectCode
	}
	if acc.CodeExpired(a.now()) {
		return domain.ErrCodeExpired
	}
	if err := a.Store.Accounts().MarkVerified(ctx, acc.ID); err != nil {
		return err
	}
	a.logger(ctx).Info("account verified", "account_id", acc.ID)
	return nil
}

func (a *AccountServiceImpl) ResendCode(ctx context.Context, username string) error {
	acc, err := a.Store.Accounts().GetByUsername(ctx, username)
	if errors.Is(err, store.ErrRecordNotFound) {
		return domain.ErrAccountNotFound
	}
	if err != nil {
		return err
	}
	if acc.Verified {
		return domain.ErrAlreadyVerified
	}

	code, err := a.newCode()
	if err != nil {
		return err
	}
	now := a.now().UTC()
	acc.VerifyCode = code
	acc.VerifyCodeExpiry = now.Add(a.CodeTTL)
	acc.UpdatedAt = now
	if err := a.Store.Accounts().Update(ctx, acc); err != nil {
		return err
	}
	if err := a.Email.SendVerification(ctx, acc.Email, acc.Username, code); err != nil {
		return errors.Join(ErrEmailDelivery, err)
	}
	return nil
}

func (a *AccountServiceImpl) SignIn(ctx context.Context, r dto.SignInRequest) (tokens *dto.TokenResponse, err error) {
	defer func() { metrics.SignInsTotal.WithLabelValues(metrics.Result(err)).Inc() }()

	if r.Identifier == "" || r.Password == "" {
		return nil, ErrEmptyCredential
	}

	var acc *domain.Account
	if looksLikeEmail(r.Identifier) {
		acc, err = a.Store.Accounts().GetByEmail(ctx, r.Identifier)
	} else {
		acc, err = a.Store.Accounts().GetByUsername(ctx, r.Identifier)
	}
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	rehashNeeded, ok := a.PasswordService.Verify(r.Password, acc)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if !acc.Verified {
		return nil, domain.ErrAccountNotVerified
	}

	if rehashNeeded {
		pw, err := a.PasswordService.Hash(r.Password)
		if err != nil {
			return nil, err
		}
		setPassword(acc, pw)
		acc.UpdatedAt = a.now().UTC()
		if err := a.Store.Accounts().Update(ctx, acc); err != nil {
			return nil, err
		}
	}
	return a.TService.Issue(ctx, acc)
}

func (a *AccountServiceImpl) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	if err := validation.Username(username); err != nil {
		return false, err
	}
	acc, err := a.Store.Accounts().GetByUsername(ctx, username)
	if errors.Is(err, store.ErrRecordNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return !acc.Verified && acc.CodeExpired(a.now()), nil
}

func (a *AccountServiceImpl) AcceptingMessages(ctx context.Context, id domain.AccountID) (bool, error) {
	acc, err := a.Store.Accounts().GetByID(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return false, domain.ErrAccountNotFound
	}
	if err != nil {
		return false, err
	}
	return acc.AcceptingMessages, nil
}

func (a *AccountServiceImpl) SetAcceptingMessages(ctx context.Context, id domain.AccountID, accepting bool) error {
	err := a.Store.Accounts().SetAcceptingMessages(ctx, id, accepting)
	if errors.Is(err, store.ErrRecordNotFound) {
		return domain.ErrAccountNotFound
	}
	return err
}

func (a *AccountServiceImpl) logger(ctx context.Context) *slog.Logger {
	return a.Logger.With(
		"request_id", middleware.RequestIDFromContext(ctx),
		"trace_id", middleware.TraceIDFromContext(ctx),
	)
}

func setPassword(acc *domain.Account, pw service.PasswordHash) {
	acc.PasswordAlgo = pw.Algo
	acc.PasswordHash = pw.Hash
	acc.PasswordSalt = pw.Salt
	acc.PasswordParams = pw.Params
	acc.PasswordVer = pw.Ver
}

func verifyResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrCodeExpired):
		return "expired"
	case errors.Is(err, domain.ErrIncorrectCode):
		return "mismatch"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "failure"
	}
}

func looksLikeEmail(s string) bool { return strings.ContainsRune(s, '@') }
