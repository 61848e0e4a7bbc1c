package models

// HTTP headers shared by the bundle API and the ADU hand-off.
const (
	// HeaderTransportID names the carrier that uploaded a bundle.
	HeaderTransportID = "X-Transport-ID"

	HeaderPeerID = "X-Peer-ID"
	HeaderAppID  = "X-App-ID"
	HeaderADUSeq = "X-ADU-Seq"
)
