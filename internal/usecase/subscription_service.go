package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/infrastructure/metrics"
)

// SubscriptionService manages channel subscriptions.
type SubscriptionService interface {
	// ToggleSubscription subscribes or unsubscribes and reports whether the
	// user is subscribed afterwards.
	ToggleSubscription(ctx context.Context, channelID, subscriberID primitive.ObjectID) (bool, error)
	ChannelSubscribers(ctx context.Context, channelID primitive.ObjectID) (*model.SubscriberList, error)
	SubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID) ([]*model.Subscription, error)
}

type subscriptionService struct {
	subs  repository.SubscriptionRepository
	users repository.UserRepository
}

// NewSubscriptionService creates a new SubscriptionService instance.
func NewSubscriptionService(subs repository.SubscriptionRepository, users repository.UserRepository) SubscriptionService {
	return &subscriptionService{
		subs:  subs,
		users: users,
	}
}

func (s *subscriptionService) ToggleSubscription(ctx context.Context, channelID, subscriberID primitive.ObjectID) (bool, error) {
	sub, err := model.NewSubscription(subscriberID, channelID)
	if err != nil {
		return false, err
	}
	if _, err := s.users.GetByID(ctx, channelID); err != nil {
		return false, err
	}

	removed, err := s.subs.Delete(ctx, subscriberID, channelID)
	if err != nil {
		return false, fmt.Errorf("remove subscription: %w", err)
	}
	if removed {
		metrics.ToggleOutcomesTotal.WithLabelValues(metrics.RelationSubscription, metrics.ToggleRemoved).Inc()
		return false, nil
	}

	if err := s.subs.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicateSubscription) {
			metrics.ToggleOutcomesTotal.WithLabelValues(metrics.RelationSubscription, metrics.ToggleNoop).Inc()
			return true, nil
		}
		return false, fmt.Errorf("create subscription: %w", err)
	}
	metrics.ToggleOutcomesTotal.WithLabelValues(metrics.RelationSubscription, metrics.ToggleAdded).Inc()
	return true, nil
}

func (s *subscriptionService) ChannelSubscribers(ctx context.Context, channelID primitive.ObjectID) (*model.SubscriberList, error) {
	if _, err := s.users.GetByID(ctx, channelID); err != nil {
		return nil, err
	}

	var list model.SubscriberList
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		subs, err := s.subs.ListSubscribers(gctx, channelID)
		if err != nil {
			return fmt.Errorf("list subscribers: %w", err)
		}
		list.Subscribers = subs
		return nil
	})
	g.Go(func() error {
		n, err := s.subs.CountSubscribers(gctx, channelID)
		if err != nil {
			return fmt.Errorf("count subscribers: %w", err)
		}
		list.Count = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if list.Subscribers == nil {
		list.Subscribers = []*model.Subscription{}
	}
	return &list, nil
}

func (s *subscriptionService) SubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID) ([]*model.Subscription, error) {
	if _, err := s.users.GetByID(ctx, subscriberID); err != nil {
		return nil, err
	}
	subs, err := s.subs.ListSubscribedChannels(ctx, subscriberID)
	if err != nil {
		return nil, fmt.Errorf("list subscribed channels: %w", err)
	}
	if subs == nil {
		subs = []*model.Subscription{}
	}
	return subs, nil
}
