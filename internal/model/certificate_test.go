package model

import (
	"errors"
	"testing"
)

func TestCertificateVariant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cert    Certificate
		want    any
		wantErr bool
	}{
		{
			name: "stake delegation",
			cert: Certificate{
				Kind:            CertStakeDelegation,
				StakeDelegation: &StakeDelegation{Account: "acct", Pools: []PoolID{"p1"}},
			},
			want: &StakeDelegation{Account: "acct", Pools: []PoolID{"p1"}},
		},
		{
			name: "pool retirement",
			cert: Certificate{
				Kind:           CertPoolRetirement,
				PoolRetirement: &PoolRetirement{Pool: "p1", RetirementTime: 42},
			},
			want: &PoolRetirement{Pool: "p1", RetirementTime: 42},
		},
		{
			name: "encrypted vote tally",
			cert: Certificate{
				Kind:               CertEncryptedVoteTally,
				EncryptedVoteTally: &EncryptedVoteTally{VotePlan: "vp"},
			},
			want: &EncryptedVoteTally{VotePlan: "vp"},
		},
		{
			name:    "unknown kind",
			cert:    Certificate{Kind: 99},
			wantErr: true,
		},
		{
			name:    "tag without variant",
			cert:    Certificate{Kind: CertVoteCast},
			wantErr: true,
		},
		{
			name: "variant under wrong tag",
			cert: Certificate{
				Kind:       CertVoteTally,
				PoolUpdate: &PoolUpdate{Pool: "p1"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.cert.Variant()
			if tt.wantErr {
				if err == nil {
					t.Fatal("Variant() expected error, got nil")
				}
				if !errors.Is(err, ErrInternalConsistency) {
					t.Fatalf("Variant() error = %v, want ErrInternalConsistency", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Variant() unexpected error: %v", err)
			}
			if got == nil {
				t.Fatal("Variant() returned nil variant")
			}
		})
	}
}

func TestCertificateVariantCoversEveryKind(t *testing.T) {
	t.Parallel()

	certs := []Certificate{
		{Kind: CertStakeDelegation, StakeDelegation: &StakeDelegation{}},
		{Kind: CertOwnerStakeDelegation, OwnerStakeDelegation: &OwnerStakeDelegation{}},
		{Kind: CertPoolRegistration, PoolRegistration: &PoolRegistration{}},
		{Kind: CertPoolRetirement, PoolRetirement: &PoolRetirement{}},
		{Kind: CertPoolUpdate, PoolUpdate: &PoolUpdate{}},
		{Kind: CertVotePlan, VotePlan: &VotePlanDetails{}},
		{Kind: CertVoteCast, VoteCast: &VoteCast{}},
		{Kind: CertVoteTally, VoteTally: &VoteTally{}},
		{Kind: CertEncryptedVoteTally, EncryptedVoteTally: &EncryptedVoteTally{}},
	}
	for _, c := range certs {
		c := c
		if _, err := c.Variant(); err != nil {
			t.Fatalf("Variant() for kind %s: %v", c.Kind, err)
		}
	}
}

func TestLeaderValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		leader  Leader
		wantErr bool
	}{
		{name: "pool leader", leader: Leader{Kind: LeaderPool, PoolID: "p1"}},
		{name: "bft leader", leader: Leader{Kind: LeaderBFT, BFTLeaderID: "ed25519_pk1"}},
		{name: "pool leader missing id", leader: Leader{Kind: LeaderPool}, wantErr: true},
		{name: "unknown kind", leader: Leader{Kind: 7}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.leader.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
