// Package advert encodes and parses the recovery advertisement a recovering
// device shows as a QR code.
//
// Wire format
//
//	"Recovery_" + JSON{"signingKey": <base64 public key>, "timestamp": <ms since epoch>}
//
// Trusted connections scan the code, sign the advertised key and timestamp,
// and hand the signature back to the recovering device. Encode and Parse
// round-trip exactly.
package advert
