package app

// InitialHandSize is the number of cards each side receives during the deal.
const InitialHandSize = 8

// TotalDealSteps is the number of DealNext calls a full deal takes.
const TotalDealSteps = InitialHandSize * 2
