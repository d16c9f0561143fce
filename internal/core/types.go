package core

import "reactorcore/pkg/domain"

type (
	Assembly     = domain.Assembly
	FuelSpec     = domain.FuelSpec
	Config       = domain.Config
	Request      = domain.Request
	RequestGroup = domain.RequestGroup
	Order        = domain.Order
	Bid          = domain.Bid
	BidGroup     = domain.BidGroup
	Delivery     = domain.Delivery
	Trade        = domain.Trade
	Event        = domain.Event
	Signal       = domain.Signal
	Snapshot     = domain.Snapshot
	Violation    = domain.Violation
	Recorder     = domain.Recorder
	Composer     = domain.Composer
)

const (
	EventTransmute  = domain.EventTransmute
	EventDischarge  = domain.EventDischarge
	EventLoad       = domain.EventLoad
	EventCycleStart = domain.EventCycleStart
	EventCycleEnd   = domain.EventCycleEnd
	DischargeFailed = domain.DischargeFailed
)
