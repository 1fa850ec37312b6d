// Package platform provides cross-platform filesystem operations used when
// linking provider directories and preparing identify entry points. On Unix
// systems it uses native symlinks and chmod directly. On Windows, permission
// bits are ignored and directory links need Developer Mode.
package platform
