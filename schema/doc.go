// Package schema provides the event-driven parsers for the two source
// databases of the mobile broadband catalog and the token driver which
// feeds them.
//
// Decode reads tokens from an encoding/xml decoder and delivers them to
// a Handler as start element, end element and character data events.
//
// Provider database
//
// ProviderParser consumes the mobile-broadband-provider-info
// serviceproviders.xml document. It holds a single State and dispatches
// each event on it:
//
//   toplevel  --<country code>-->        country
//   country   --<provider>-->            provider
//   provider  --<gsm>-->                 gsm
//   provider  --<cdma>-->                cdma
//   gsm       --<apn value>-->           gsm-apn
//   gsm-apn   --</apn>-->                gsm
//   gsm       --</gsm>-->                provider
//   cdma      --</cdma>-->               provider
//   provider  --</provider>-->           country
//   country   --</country>-->            toplevel
//
// A serviceproviders format other than "2.0" moves the parser to the
// terminal error state, which stops Decode.
//
// Character data is buffered until the next element boundary and is
// consumed by the closing tag which ends it, so <name>, <username> and
// <password> each see only their own text.
//
// ISO 3166 codes
//
// ISOParser consumes the iso-codes iso_3166.xml document, mapping each
// entry's (optionally translated) display name to its alpha-2 code.
// Entries lacking a mandatory attribute are skipped with a warning.
package schema
