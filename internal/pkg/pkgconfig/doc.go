// Package pkgconfig reads service settings through the Config interface.
//
// Viper is the only implementation. Code registers its defaults up front so a
// config file only needs to name what it overrides, such as the data
// directory or the report path.
package pkgconfig
