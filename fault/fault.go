// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type AuthorisationError GenericError
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type PaymentError GenericError
type PreconditionError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised        = ProcessError("already initialised")
	CertificateFileExists     = ExistsError("certificate file already exists")
	CryptoFailed              = ProcessError("encryption failed")
	DocumentAlreadyAttested   = PreconditionError("document already attested")
	DocumentNotFound          = NotFoundError("document not found")
	DuplicateCID              = ExistsError("duplicate content identifier")
	EmptyCID                  = InvalidError("content identifier is empty")
	EmptyProjectName          = InvalidError("project name is empty")
	EmptyVerifierList         = InvalidError("elected verifier list is empty")
	IdentityNameExists        = ExistsError("identity name already exists")
	IdentityNameNotFound      = NotFoundError("identity name not found")
	IncompatibleOptions       = InvalidError("incompatible options")
	IncorrectPayment          = PaymentError("incorrect payment")
	InsufficientBalance       = PreconditionError("insufficient balance")
	InsufficientFunds         = PaymentError("insufficient funds")
	InsufficientListingAmount = PreconditionError("insufficient listing amount")
	InvalidAddress            = InvalidError("invalid address")
	InvalidCID                = InvalidError("invalid content identifier")
	InvalidCIDVersion         = InvalidError("unsupported content identifier version")
	InvalidChain              = InvalidError("invalid chain")
	InvalidConfiguration      = InvalidError("configuration did not return a table")
	InvalidCount              = InvalidError("invalid count")
	InvalidCursor             = InvalidError("invalid cursor")
	InvalidAmount             = InvalidError("invalid amount")
	InvalidFeeBps             = InvalidError("fee basis points out of range")
	InvalidIPAddress          = InvalidError("invalid IP address")
	InvalidLoggerChannel      = ProcessError("invalid logger channel")
	InvalidPasswordLength     = InvalidError("invalid password length")
	InvalidPortNumber         = InvalidError("invalid port number")
	InvalidPrice              = InvalidError("invalid price")
	InvalidPrivateKey         = InvalidError("invalid private key")
	InvalidPrivateKeyFile     = InvalidError("invalid private key file")
	InvalidPublicKeyFile      = InvalidError("invalid public key file")
	InvalidSequence           = PreconditionError("invalid call sequence")
	InvalidSignature          = InvalidError("invalid signature")
	KeyFileExists             = ExistsError("key file already exists")
	ListingNotFound           = NotFoundError("listing not found")
	MissingParameters         = InvalidError("missing parameters")
	NotAuthorised             = AuthorisationError("not authorised")
	NotAvailableInMode        = ProcessError("not available in current mode")
	NotInitialised            = ProcessError("not initialised")
	NotPrivateKey             = InvalidError("identity has no private key")
	NotVerifier               = AuthorisationError("not a verifier")
	NotFound                  = NotFoundError("not found")
	PasswordMismatch          = InvalidError("passwords do not match")
	RateLimiting              = InvalidError("rate limiting")
	SignatureInvalid          = AuthorisationError("signature invalid")
	StorageInUse              = ProcessError("storage transaction already in use")
	StorageNotInUse           = ProcessError("storage transaction not in use")
	TestingChainOnly          = ProcessError("only available on a testing chain")
	WrongPassword             = InvalidError("wrong password")
)

// the error interface methods
func (e GenericError) Error() string       { return string(e) }
func (e AuthorisationError) Error() string { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e PaymentError) Error() string       { return string(e) }
func (e PreconditionError) Error() string  { return string(e) }
func (e ProcessError) Error() string       { return string(e) }

// determine the class of an error
func IsErrAuthorisation(e error) bool { _, ok := e.(AuthorisationError); return ok }
func IsErrExists(e error) bool        { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool       { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool      { _, ok := e.(NotFoundError); return ok }
func IsErrPayment(e error) bool       { _, ok := e.(PaymentError); return ok }
func IsErrPrecondition(e error) bool  { _, ok := e.(PreconditionError); return ok }
func IsErrProcess(e error) bool       { _, ok := e.(ProcessError); return ok }
