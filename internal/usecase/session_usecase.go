package usecase

import (
	"context"

	"medcare-portal/internal/domain/entity"
	"medcare-portal/internal/service"

	"github.com/sirupsen/logrus"
)

type SessionUsecase interface {
	// SignOut revokes the presented token. The auth provider keeps issuing
	// new tokens; only this one stops working here.
	SignOut(ctx context.Context, identity entity.Identity) error
}

type sessionUsecase struct {
	log          *logrus.Logger
	revocation   service.SessionRevocation
	invalidator  QueryInvalidator
	auditService service.AuditService
}

func NewSessionUsecase(
	log *logrus.Logger,
	revocation service.SessionRevocation,
	invalidator QueryInvalidator,
	auditService service.AuditService,
) SessionUsecase {
	return &sessionUsecase{
		log:          log,
		revocation:   revocation,
		invalidator:  invalidator,
		auditService: auditService,
	}
}

func (u *sessionUsecase) SignOut(ctx context.Context, identity entity.Identity) error {
	if err := u.revocation.Revoke(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
		u.log.Warnf("Failed to revoke token for user %s: %+v", identity.UserID, err)
		return err
	}

	u.invalidator.Invalidate(ProfileKey(identity.UserID))

	userID := identity.UserID
	if err := u.auditService.Record(ctx, &userID, entity.AuditActionSessionSignOut, entity.JSON{
		"token_id": identity.TokenID,
	}); err != nil {
		u.log.Warnf("Sign-out of %s recorded without audit entry: %+v", userID, err)
	}

	u.log.Infof("User signed out: %s", identity.UserID)
	return nil
}
