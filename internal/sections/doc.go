// Package sections resolves page-builder section settings (padding,
// container width, background and text colors) into utility classes and
// inline styles against the site palette.
package sections
