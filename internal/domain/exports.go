package domain

import (
	interfaces "brightrec/internal/domain/interfaces"
	types "brightrec/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	BackupKey         = types.BackupKey
	Ed25519Public     = types.Ed25519Public
	Ed25519Private    = types.Ed25519Private
	Cosignature       = types.Cosignature
	RecoverySession   = types.RecoverySession
	Advertisement     = types.Advertisement
	Photo             = types.Photo
	Profile           = types.Profile
	Connection        = types.Connection
	Group             = types.Group
	Bundle            = types.Bundle
	UserState         = types.UserState
	AppState          = types.AppState
	Signal            = types.Signal
	ProgressEvent     = types.ProgressEvent
	SigningKeyRequest = types.SigningKeyRequest
	TrustedRequest    = types.TrustedRequest
	ItemKind          = types.ItemKind
	ItemResult        = types.ItemResult
	BatchReport       = types.BatchReport
	BackupReport      = types.BackupReport
	Phase             = types.Phase
	RecoveryResult    = types.RecoveryResult
	AcceptResult      = types.AcceptResult
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	SessionStore    = interfaces.SessionStore
	KeyStore        = interfaces.KeyStore
	ImageStore      = interfaces.ImageStore
	StateStore      = interfaces.StateStore
	BackupStore     = interfaces.BackupStore
	NodeClient      = interfaces.NodeClient
	ProgressSink    = interfaces.ProgressSink
	RecoveryService = interfaces.RecoveryService
	BackupService   = interfaces.BackupService
	SignerService   = interfaces.SignerService
)

// Constants re-exported from the types subpackage.
const (
	DataKey          = types.DataKey
	OperationVersion = types.OperationVersion

	BackupProgress  = types.BackupProgress
	RestoreProgress = types.RestoreProgress
	RestoreTotal    = types.RestoreTotal

	ItemConnection = types.ItemConnection
	ItemGroup      = types.ItemGroup
	ItemUser       = types.ItemUser

	PhaseCollectingSignatures = types.PhaseCollectingSignatures
	PhaseThresholdReached     = types.PhaseThresholdReached
	PhaseKeyRotated           = types.PhaseKeyRotated
	PhaseDataFetched          = types.PhaseDataFetched
	PhasePhotosFetched        = types.PhasePhotosFetched
	PhaseComplete             = types.PhaseComplete
	PhaseFailed               = types.PhaseFailed
)
