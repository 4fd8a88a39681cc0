package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/netdevops-io/go-fmc/pkg/fmc"
)

// ErrPolicyNotFound indicates a lookup by name matched no access policy.
var ErrPolicyNotFound = errors.New("access policy not found")

const accessPoliciesEndpoint = "policy/accesspolicies"

// AccessPoliciesClient implements fmc.AccessPoliciesClient.
type AccessPoliciesClient struct {
	client *Client
}

// NewAccessPoliciesClient creates a new access policies client.
func NewAccessPoliciesClient(client *Client) *AccessPoliciesClient {
	return &AccessPoliciesClient{
		client: client,
	}
}

// Create implements fmc.AccessPoliciesClient.Create.
func (c *AccessPoliciesClient) Create(ctx context.Context, request *fmc.AccessPolicyCreateRequest) (*fmc.AccessPolicy, error) {
	raw, err := c.client.Post(ctx, accessPoliciesEndpoint, request)
	if err != nil {
		return nil, fmt.Errorf("creating access policy: %w", err)
	}

	var policy fmc.AccessPolicy

	err = json.Unmarshal(raw, &policy)
	if err != nil {
		return nil, fmt.Errorf("parsing access policy: %w", err)
	}

	return &policy, nil
}

// Get implements fmc.AccessPoliciesClient.Get.
func (c *AccessPoliciesClient) Get(ctx context.Context, guid string) (*fmc.AccessPolicy, error) {
	raw, err := c.client.Get(ctx, accessPoliciesEndpoint+"/"+guid, nil)
	if err != nil {
		return nil, fmt.Errorf("getting access policy: %w", err)
	}

	var policy fmc.AccessPolicy

	err = json.Unmarshal(raw, &policy)
	if err != nil {
		return nil, fmt.Errorf("parsing access policy: %w", err)
	}

	return &policy, nil
}

// Delete implements fmc.AccessPoliciesClient.Delete.
func (c *AccessPoliciesClient) Delete(ctx context.Context, guid string) error {
	err := c.client.Delete(ctx, accessPoliciesEndpoint+"/"+guid)
	if err != nil {
		return fmt.Errorf("deleting access policy: %w", err)
	}

	return nil
}

// List implements fmc.AccessPoliciesClient.List.
func (c *AccessPoliciesClient) List(ctx context.Context, params *fmc.QueryParams) (*fmc.ListResponse[fmc.AccessPolicy], error) {
	raw, err := c.client.Get(ctx, accessPoliciesEndpoint, params.ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing access policies: %w", err)
	}

	var list fmc.ListResponse[fmc.AccessPolicy]

	err = json.Unmarshal(raw, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing access policies list: %w", err)
	}

	return &list, nil
}

// ListAll implements fmc.AccessPoliciesClient.ListAll.
func (c *AccessPoliciesClient) ListAll(ctx context.Context) ([]fmc.AccessPolicy, error) {
	base := fmc.NewQueryParams().WithExpanded(true).ToValues()

	fetch := func(ctx context.Context, queryParams *fmc.QueryParams) (*fmc.ListResponse[fmc.AccessPolicy], error) {
		return fetchPage[fmc.AccessPolicy](ctx, c.client, accessPoliciesEndpoint, base, queryParams)
	}

	policies, err := fmc.AllPages(ctx, fetch, nil)
	if err != nil {
		return nil, fmt.Errorf("listing all access policies: %w", err)
	}

	return policies, nil
}

// FindByName implements fmc.AccessPoliciesClient.FindByName. The access
// policy endpoint does not support server-side name filters, so the match
// runs over the full collection.
func (c *AccessPoliciesClient) FindByName(ctx context.Context, name string) (*fmc.AccessPolicy, error) {
	policies, err := c.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range policies {
		if policies[i].Name == name {
			return &policies[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrPolicyNotFound, name)
}

// CreateRule implements fmc.AccessPoliciesClient.CreateRule.
func (c *AccessPoliciesClient) CreateRule(ctx context.Context, policyGUID string, request *fmc.AccessRuleRequest) (*fmc.AccessRule, error) {
	raw, err := c.client.Post(ctx, rulesEndpoint(policyGUID), request)
	if err != nil {
		return nil, fmt.Errorf("creating access rule: %w", err)
	}

	var rule fmc.AccessRule

	err = json.Unmarshal(raw, &rule)
	if err != nil {
		return nil, fmt.Errorf("parsing access rule: %w", err)
	}

	return &rule, nil
}

// GetRule implements fmc.AccessPoliciesClient.GetRule.
func (c *AccessPoliciesClient) GetRule(ctx context.Context, policyGUID, ruleGUID string) (*fmc.AccessRule, error) {
	raw, err := c.client.Get(ctx, rulesEndpoint(policyGUID)+"/"+ruleGUID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting access rule: %w", err)
	}

	var rule fmc.AccessRule

	err = json.Unmarshal(raw, &rule)
	if err != nil {
		return nil, fmt.Errorf("parsing access rule: %w", err)
	}

	return &rule, nil
}

// UpdateRule implements fmc.AccessPoliciesClient.UpdateRule. The rule's
// read-only links are stripped before the write; FMC rejects bodies that
// echo them back.
func (c *AccessPoliciesClient) UpdateRule(ctx context.Context, policyGUID, ruleGUID string, rule *fmc.AccessRule) (*fmc.AccessRule, error) {
	payload := *rule
	payload.Links = fmc.Links{}

	raw, err := c.client.Put(ctx, rulesEndpoint(policyGUID)+"/"+ruleGUID, &payload)
	if err != nil {
		return nil, fmt.Errorf("updating access rule: %w", err)
	}

	var updated fmc.AccessRule

	err = json.Unmarshal(raw, &updated)
	if err != nil {
		return nil, fmt.Errorf("parsing access rule: %w", err)
	}

	return &updated, nil
}

// DeleteRule implements fmc.AccessPoliciesClient.DeleteRule.
func (c *AccessPoliciesClient) DeleteRule(ctx context.Context, policyGUID, ruleGUID string) error {
	err := c.client.Delete(ctx, rulesEndpoint(policyGUID)+"/"+ruleGUID)
	if err != nil {
		return fmt.Errorf("deleting access rule: %w", err)
	}

	return nil
}

// ListAllRules implements fmc.AccessPoliciesClient.ListAllRules.
func (c *AccessPoliciesClient) ListAllRules(ctx context.Context, policyGUID string) ([]fmc.AccessRule, error) {
	base := fmc.NewQueryParams().WithExpanded(true).ToValues()

	fetch := func(ctx context.Context, queryParams *fmc.QueryParams) (*fmc.ListResponse[fmc.AccessRule], error) {
		return fetchPage[fmc.AccessRule](ctx, c.client, rulesEndpoint(policyGUID), base, queryParams)
	}

	rules, err := fmc.AllPages(ctx, fetch, nil)
	if err != nil {
		return nil, fmt.Errorf("listing access rules: %w", err)
	}

	return rules, nil
}

// NormalizeRuleLogging implements fmc.AccessPoliciesClient.NormalizeRuleLogging.
// ALLOW rules log at connection end, BLOCK and TRUST rules log at connection
// begin, and every rule sends events to the management center. Rules already
// in that shape are skipped; a rejected update is counted and the pass
// continues with the next rule.
func (c *AccessPoliciesClient) NormalizeRuleLogging(ctx context.Context, policyGUID string) (*fmc.RuleLoggingSummary, error) {
	rules, err := c.ListAllRules(ctx, policyGUID)
	if err != nil {
		return nil, err
	}

	summary := &fmc.RuleLoggingSummary{Total: len(rules)}

	for i := range rules {
		rule := rules[i]

		logBegin, logEnd := desiredLogging(rule.Action)
		if rule.LogBegin == logBegin && rule.LogEnd == logEnd && rule.SendEventsToFMC {
			summary.Skipped++

			continue
		}

		rule.LogBegin = logBegin
		rule.LogEnd = logEnd
		rule.SendEventsToFMC = true

		_, err := c.UpdateRule(ctx, policyGUID, rule.ID, &rule)
		if err != nil {
			summary.Failed++
			summary.FailedIDs = append(summary.FailedIDs, rule.ID)

			c.client.logger.Warn("rule logging update failed", map[string]interface{}{
				"policy": policyGUID,
				"rule":   rule.ID,
				"error":  err.Error(),
			})

			continue
		}

		summary.Updated++
	}

	return summary, nil
}

// desiredLogging maps a rule action to its logging flags.
func desiredLogging(action string) (logBegin, logEnd bool) {
	if action == fmc.RuleActionAllow {
		return false, true
	}

	return true, false
}

func rulesEndpoint(policyGUID string) string {
	return accessPoliciesEndpoint + "/" + policyGUID + "/accessrules"
}
