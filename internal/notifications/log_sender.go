package notifications

import (
	"context"
	"log/slog"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/royalty_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/royalty_settlement_app/internal/middleware"
)

// LogSender writes notifications to the log. Used when no queue is configured.
type LogSender struct{}

var _ portssvc.NotificationSender = LogSender{}

func (LogSender) NotifyEarning(ctx context.Context, n domain.EarningNotification) error {
	middleware.GetLoggerFromCtx(ctx).Info("Earning notification",
		slog.String("earning_id", n.EarningID),
		slog.String("release_id", n.ReleaseID),
		slog.String("artist", n.ArtistName),
		slog.Any("recipients", n.Recipients),
		slog.String("royalty_amount", n.RoyaltyAmount.StringFixed(2)))
	return nil
}
