package domain

// Request asks the exchange for one assembly of a commodity, targeting the
// composition its input recipe resolved to at construction time.
type Request struct {
	Commodity   string  `json:"commodity"`
	Recipe      string  `json:"recipe"`
	Composition string  `json:"composition"`
	Quantity    float64 `json:"quantity"`
	Preference  float64 `json:"preference"`
}

// RequestGroup is the unit of request emission. A mutual group requests one
// assembly under every configured input pairing simultaneously and expects the
// exchange to satisfy exactly one of them.
type RequestGroup struct {
	Requests []Request `json:"requests"`
	Mutual   bool      `json:"mutual"`
}

// Order is outstanding downstream demand for an output commodity.
type Order struct {
	Requester string  `json:"requester"`
	Commodity string  `json:"commodity"`
	Quantity  float64 `json:"quantity"`
}

// Bid offers one concrete spent assembly against an order.
type Bid struct {
	Order    Order    `json:"order"`
	Assembly Assembly `json:"assembly"`
}

// BidGroup collects every bid for one output commodity together with the
// aggregate capacity constraint: the total spent quantity available for that
// commodity, regardless of how many orders the individual bids target.
type BidGroup struct {
	Commodity string  `json:"commodity"`
	Bids      []Bid   `json:"bids"`
	Capacity  float64 `json:"capacity"`
}

// Delivery is a settled input trade: one accepted assembly and the input
// commodity it arrived under.
type Delivery struct {
	Commodity string   `json:"commodity"`
	Assembly  Assembly `json:"assembly"`
}

// Trade is a settled output trade. Each trade withdraws exactly one assembly
// from the spent buffer: the concrete unit named by AssemblyID when the
// matcher settled a specific bid, or the oldest of the commodity when unset.
type Trade struct {
	Requester  string `json:"requester"`
	Commodity  string `json:"commodity"`
	AssemblyID string `json:"assembly_id,omitempty"`
}
