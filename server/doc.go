// Package server exposes captcha generation over HTTP: challenge
// issue/verify for form protection and raw PNG previews for eyeballing
// difficulty tiers.
//
// Issued challenges live server-side in an expiring single-use store;
// the client only ever sees the challenge id and the rendered image, so
// the answer never crosses the wire until the client types it back.
package server
