package festin_test

import (
	"testing"

	"github.com/fwojciec/festin"
	"github.com/stretchr/testify/assert"
)

func TestBlacklist_Check(t *testing.T) {
	t.Parallel()

	bl := &festin.Blacklist{
		TLDs:     []string{".gov", "amazonaws.com"},
		Prefixes: []string{"localhost", "127."},
		Domains:  []string{"example.org"},
	}

	tests := []struct {
		domain string
		reason festin.SkipReason
		skip   bool
	}{
		{"whitehouse.gov", festin.SkipTLD, true},
		{"x.amazonaws.com", festin.SkipTLD, true},
		{"localhost:8080", festin.SkipPrefix, true},
		{"127.0.0.1", festin.SkipPrefix, true},
		{"example.org", festin.SkipDomain, true},
		{"www.example.org", "", false},
		{"example.com", "", false},
		{"government.com", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			t.Parallel()

			reason, skip := bl.Check(tt.domain)
			assert.Equal(t, tt.skip, skip)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestBlacklist_Check_is_pure(t *testing.T) {
	t.Parallel()

	bl := festin.DefaultBlacklist()
	domains := []string{"cdn.example.com", "www.google.com", "s3.amazonaws.com", "127.0.0.1", "bucket.s3.amazonaws.com"}

	for _, d := range domains {
		reason, skip := bl.Check(d)
		for i := 0; i < 10; i++ {
			r, s := bl.Check(d)
			assert.Equal(t, skip, s, "decision for %s changed", d)
			assert.Equal(t, reason, r, "reason for %s changed", d)
		}
	}
}

func TestBlacklist_Check_nil_matches_nothing(t *testing.T) {
	t.Parallel()

	var bl *festin.Blacklist
	_, skip := bl.Check("anything.gov")
	assert.False(t, skip)
}

func TestDefaultBlacklist_keeps_bucket_hosts(t *testing.T) {
	t.Parallel()

	bl := festin.DefaultBlacklist()

	_, skip := bl.Check("bucket.s3.amazonaws.com")
	assert.False(t, skip, "virtual-hosted bucket must be probed")

	_, skip = bl.Check("s3.amazonaws.com")
	assert.True(t, skip, "bare service endpoint is not a bucket")
}

func TestDefaultBlacklist_amazonaws_hosts(t *testing.T) {
	t.Parallel()

	bl := festin.DefaultBlacklist()

	tests := []struct {
		domain string
		skip   bool
		reason festin.SkipReason
	}{
		{"amazonaws.com", true, festin.SkipDomain},
		{"s3.amazonaws.com", true, festin.SkipDomain},
		{"aws.amazon.com", true, festin.SkipDomain},
		// Any other amazonaws.com host may front a bucket or redirect to one.
		{"x.amazonaws.com", false, ""},
		{"ec2-1-2-3-4.compute.amazonaws.com", false, ""},
		{"bucket.s3.amazonaws.com", false, ""},
		{"bucket.s3-eu-west-1.amazonaws.com", false, ""},
		{"s3.eu-west-1.amazonaws.com", false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			t.Parallel()

			reason, skip := bl.Check(tt.domain)

			assert.Equal(t, tt.skip, skip)
			assert.Equal(t, tt.reason, reason)
		})
	}
}
