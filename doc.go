/*
Package mbwizard is a set of libraries for configuring mobile broadband
data connections from the mobile-broadband-provider-info database.

The schema package streams serviceproviders.xml and iso_3166.xml through
event driven parsers, catalog joins their output into nested lookup
tables keyed by country, provider and billing plan, and ofono writes the
chosen plan's access point settings to a modem over D-Bus.

See the wizard sub-directory for the interactive selection flow and
cmd/mbwizard for the command tying the pieces together.
*/
package mbwizard
