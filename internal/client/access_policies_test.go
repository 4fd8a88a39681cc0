package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netdevops-io/go-fmc/pkg/fmc"
)

func TestAccessPoliciesCreate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, domainPath("policy/accesspolicies"), r.URL.Path)

		var req fmc.AccessPolicyCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "branch-policy", req.Name)
		require.NotNil(t, req.DefaultAction)
		assert.Equal(t, "BLOCK", req.DefaultAction.Action)

		w.WriteHeader(http.StatusCreated)
		writeJSON(t, w, fmc.AccessPolicy{ID: "policy-guid-1", Name: req.Name})
	})

	policy, err := client.AccessPolicies().Create(context.Background(), &fmc.AccessPolicyCreateRequest{
		Name:          "branch-policy",
		DefaultAction: &fmc.DefaultAction{Action: "BLOCK"},
	})
	require.NoError(t, err)
	assert.Equal(t, "policy-guid-1", policy.ID)
}

func TestAccessPoliciesFindByName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		resp := fmc.ListResponse[fmc.AccessPolicy]{
			Items: []fmc.AccessPolicy{
				{ID: "policy-guid-1", Name: "hq-policy"},
				{ID: "policy-guid-2", Name: "branch-policy"},
			},
		}
		resp.Paging.Count = 2
		writeJSON(t, w, resp)
	})

	policy, err := client.AccessPolicies().FindByName(context.Background(), "branch-policy")
	require.NoError(t, err)
	assert.Equal(t, "policy-guid-2", policy.ID)

	_, err = client.AccessPolicies().FindByName(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPolicyNotFound)
}

func TestAccessPoliciesRuleCRUD(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rulesBase := domainPath("policy/accesspolicies/policy-guid-1/accessrules")

		switch {
		case r.Method == http.MethodPost && r.URL.Path == rulesBase:
			var req fmc.AccessRuleRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

			w.WriteHeader(http.StatusCreated)
			writeJSON(t, w, fmc.AccessRule{ID: "rule-guid-1", Name: req.Name, Action: req.Action})
		case r.Method == http.MethodGet && r.URL.Path == rulesBase+"/rule-guid-1":
			writeJSON(t, w, fmc.AccessRule{ID: "rule-guid-1", Name: "allow-web", Action: fmc.RuleActionAllow})
		case r.Method == http.MethodDelete && r.URL.Path == rulesBase+"/rule-guid-1":
			writeJSON(t, w, fmc.AccessRule{ID: "rule-guid-1"})
		default:
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()

	rule, err := client.AccessPolicies().CreateRule(ctx, "policy-guid-1", &fmc.AccessRuleRequest{
		Name:   "allow-web",
		Action: fmc.RuleActionAllow,
	})
	require.NoError(t, err)
	assert.Equal(t, "rule-guid-1", rule.ID)

	fetched, err := client.AccessPolicies().GetRule(ctx, "policy-guid-1", "rule-guid-1")
	require.NoError(t, err)
	assert.Equal(t, "allow-web", fetched.Name)

	require.NoError(t, client.AccessPolicies().DeleteRule(ctx, "policy-guid-1", "rule-guid-1"))
}

func TestNormalizeRuleLogging(t *testing.T) {
	rules := []fmc.AccessRule{
		{ID: "r1", Name: "allow-web", Action: fmc.RuleActionAllow},
		{ID: "r2", Name: "block-bad", Action: fmc.RuleActionBlock},
		{ID: "r3", Name: "compliant", Action: fmc.RuleActionAllow, LogEnd: true, SendEventsToFMC: true},
		{ID: "r4", Name: "trust-voip", Action: fmc.RuleActionTrust},
	}

	updated := map[string]fmc.AccessRule{}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rulesBase := domainPath("policy/accesspolicies/policy-guid-1/accessrules")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == rulesBase:
			resp := fmc.ListResponse[fmc.AccessRule]{Items: rules}
			resp.Paging.Count = len(rules)
			writeJSON(t, w, resp)
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, rulesBase+"/"):
			var rule fmc.AccessRule
			require.NoError(t, json.NewDecoder(r.Body).Decode(&rule))
			updated[rule.ID] = rule
			writeJSON(t, w, rule)
		default:
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	summary, err := client.AccessPolicies().NormalizeRuleLogging(context.Background(), "policy-guid-1")
	require.NoError(t, err)

	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, 3, summary.Updated)
	assert.Equal(t, 1, summary.Skipped)
	assert.Zero(t, summary.Failed)

	// ALLOW logs at connection end.
	require.Contains(t, updated, "r1")
	assert.False(t, updated["r1"].LogBegin)
	assert.True(t, updated["r1"].LogEnd)
	assert.True(t, updated["r1"].SendEventsToFMC)

	// BLOCK and TRUST log at connection begin.
	for _, id := range []string{"r2", "r4"} {
		require.Contains(t, updated, id)
		assert.True(t, updated[id].LogBegin)
		assert.False(t, updated[id].LogEnd)
		assert.True(t, updated[id].SendEventsToFMC)
	}

	// Already-compliant rules are not rewritten.
	assert.NotContains(t, updated, "r3")
}

func TestNormalizeRuleLoggingCountsFailures(t *testing.T) {
	rules := []fmc.AccessRule{
		{ID: "r1", Name: "allow-web", Action: fmc.RuleActionAllow},
		{ID: "r2", Name: "block-bad", Action: fmc.RuleActionBlock},
	}

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			resp := fmc.ListResponse[fmc.AccessRule]{Items: rules}
			resp.Paging.Count = len(rules)
			writeJSON(t, w, resp)
		case http.MethodPut:
			if strings.HasSuffix(r.URL.Path, "/r1") {
				w.WriteHeader(http.StatusUnprocessableEntity)
				_, _ = w.Write([]byte(`{"error":{"messages":[{"description":"rule is read-only"}]}}`))

				return
			}

			var rule fmc.AccessRule
			require.NoError(t, json.NewDecoder(r.Body).Decode(&rule))
			writeJSON(t, w, rule)
		}
	})

	summary, err := client.AccessPolicies().NormalizeRuleLogging(context.Background(), "policy-guid-1")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, []string{"r1"}, summary.FailedIDs)
}
