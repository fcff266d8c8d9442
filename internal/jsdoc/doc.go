// Package jsdoc associates JSDoc block comments with the declarations they
// document and parses their @param/@returns/@allow tags. Association is
// purely positional: a /** ... */ comment binds to the next sibling
// declaration when only whitespace separates them.
package jsdoc
