package events

import "context"

type Publisher interface {
	PublishEventCreated(ctx context.Context, event EventCreated) error
	PublishTransfer(ctx context.Context, event Transfer) error
	PublishTicketUsed(ctx context.Context, event TicketUsed) error
	PublishTicketListed(ctx context.Context, event TicketListed) error
	PublishTicketSold(ctx context.Context, event TicketSold) error
	PublishOffer(ctx context.Context, event OfferEvent) error
	Close() error
}

// NopPublisher drops every fact. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishEventCreated(context.Context, EventCreated) error { return nil }
func (NopPublisher) PublishTransfer(context.Context, Transfer) error         { return nil }
func (NopPublisher) PublishTicketUsed(context.Context, TicketUsed) error     { return nil }
func (NopPublisher) PublishTicketListed(context.Context, TicketListed) error { return nil }
func (NopPublisher) PublishTicketSold(context.Context, TicketSold) error     { return nil }
func (NopPublisher) PublishOffer(context.Context, OfferEvent) error          { return nil }
func (NopPublisher) Close() error                                            { return nil }
