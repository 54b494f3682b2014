// Package kernel contains the shared value objects of the domain model:
// UUID identities and Money amounts. Both are immutable, validate themselves,
// and must be created through their factory functions; zero values fail
// validation by design of the constructors.
package kernel
