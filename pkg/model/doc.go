// Package model defines the field catalog consumed by the validation
// resolver, the form state machine and the renderers. Definitions live in
// internal/model and are re-exported here.
//
// The catalog is fixed: SignIn collects email and password, SignUp collects
// the profile fields (first/last name, address, city, state, postal code,
// date of birth, last four SSN digits) followed by the same credentials.
// FieldsFor returns the ordered catalog for a mode so renderers can show or
// hide inputs without consulting the state machine. Validation rules use
// canonical identifiers (minLength/maxLength, pattern, email, date) with
// string parameters so snapshots stay deterministic.
package model
