// Package contact handles public contact form submissions: it strips the
// form's control fields, emails the remaining values to the site owner and
// optionally appends them to a Google Sheet.
package contact
