package model

// Package model defines the request-scoped values passed between the bridge
// and its platform capabilities: launch requests, launch outcomes and memory
// reports. None of them outlive a single call.
