/*
Package wizard walks a user through choosing a mobile broadband plan on
a line oriented terminal.

Pages are shown in order: country, provider, plan and confirmation.
Each selection page lists numbered choices; an answer is a number, an
exact name, an empty line for the preselected choice, "b" to return to
the previous page or "q" to quit. The country page preselects the
country named by Config.Region.

Run calls the Handler's OnConfirm once the user accepts the selected
plan, and OnClose when the wizard has finished either way.
*/
package wizard
