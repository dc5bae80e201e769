// Package osuenv finds the osu! installation on this machine. Each concern
// sits behind its own small strategy so callers can swap it out: a static
// table of usual install paths, a ProcessChecker that asks the OS whether
// osu! is running, and a DirectoryPicker that asks the user.
package osuenv
