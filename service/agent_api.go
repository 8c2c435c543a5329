package service

import (
	"context"
	"fmt"

	"github.com/docmindhq/docmind-be/types"
	"github.com/docmindhq/docmind-be/utils"
)

// AgentAPIClient manages hosted agents and agent groups.
type AgentAPIClient struct {
	api      *utils.APIClient
	clientID string
}

// Agent describes one hosted agent definition.
type Agent struct {
	AgentName           string  `json:"agentName"`
	Description         string  `json:"description"`
	Instructions        string  `json:"instructions"`
	AgentKind           string  `json:"agentKind"`
	Temperature         float64 `json:"temperature"`
	MaxTokens           int     `json:"maxTokens"`
	ModelDeploymentName string  `json:"modelDeploymentName"`
	PromptTemplate      string  `json:"promptTemplate"`
}

// AgentGroup describes an orchestrated set of agents.
type AgentGroup struct {
	AgentGroupName                  string            `json:"agentGroupName"`
	OrchestratorInstruction         string            `json:"orchestratorInstruction"`
	SelectionInstruction            string            `json:"selectionInstruction"`
	ResultQualityControlInstruction string            `json:"resultQualityControlInstruction"`
	MaxIterations                   int               `json:"maximumNumberOfIteration"`
	MaxHistoryItems                 int               `json:"maximumNumberOfHistoryItems"`
	Temperature                     float64           `json:"temperature"`
	MaxTokens                       int               `json:"maxTokens"`
	DeploymentName                  string            `json:"deploymentName"`
	Agents                          []AgentGroupEntry `json:"agents"`
}

// AgentGroupEntry names one member of a group.
type AgentGroupEntry struct {
	AgentName string `json:"agentName"`
	AgentKind string `json:"agentKind"`
}

func NewAgentAPIClient(baseURL, clientID, apiKey string) (*AgentAPIClient, error) {
	if clientID == "" {
		return nil, &types.ConfigurationError{Field: "client_id", Reason: "must not be empty"}
	}
	api, err := utils.NewAPIClient(baseURL, map[string]string{
		"Platform-Api-Version": platformAPIVersion,
		"Accept":               "application/json",
		"x-api-key":            apiKey,
	})
	if err != nil {
		return nil, err
	}
	return &AgentAPIClient{api: api, clientID: clientID}, nil
}

// CreateAgent registers a new agent. The user message placeholder is appended
// to the instructions so the hosted runtime can inject the payload.
func (c *AgentAPIClient) CreateAgent(ctx context.Context, agent Agent) error {
	agent.Instructions += "The user question to process:\n---\n{{payload.userMessage}}\n"
	path := fmt.Sprintf("/agents/api/%s/agents", c.clientID)
	return c.api.PostJSON(ctx, path, agent, nil, nil)
}

// ListAgents returns all agents registered for the client.
func (c *AgentAPIClient) ListAgents(ctx context.Context) ([]Agent, error) {
	var agents []Agent
	path := fmt.Sprintf("/agents/api/%s/agents", c.clientID)
	if err := c.api.GetJSON(ctx, path, nil, nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

// UpdateAgent replaces an existing agent definition.
func (c *AgentAPIClient) UpdateAgent(ctx context.Context, agent Agent) error {
	path := fmt.Sprintf("/agents/api/%s/agents/%s/%s", c.clientID, agent.AgentName, agent.AgentKind)
	return c.api.Patch(ctx, path, agent, nil, nil)
}

// DeleteAgent removes an agent.
func (c *AgentAPIClient) DeleteAgent(ctx context.Context, agentName, agentKind string) error {
	path := fmt.Sprintf("/agents/api/%s/agents/%s/%s", c.clientID, agentName, agentKind)
	_, err := c.api.Delete(ctx, path, nil)
	return err
}

// CreateAgentGroup registers a new agent group.
func (c *AgentAPIClient) CreateAgentGroup(ctx context.Context, group AgentGroup) error {
	path := fmt.Sprintf("/agents/api/%s/agent-groups", c.clientID)
	return c.api.PostJSON(ctx, path, group, nil, nil)
}

// ListAgentGroups returns all agent groups for the client.
func (c *AgentAPIClient) ListAgentGroups(ctx context.Context) ([]AgentGroup, error) {
	var groups []AgentGroup
	path := fmt.Sprintf("/agents/api/%s/agent-groups", c.clientID)
	if err := c.api.GetJSON(ctx, path, nil, nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// UpdateAgentGroup replaces an existing group definition.
func (c *AgentAPIClient) UpdateAgentGroup(ctx context.Context, group AgentGroup) error {
	path := fmt.Sprintf("/agents/api/%s/agent-groups/%s", c.clientID, group.AgentGroupName)
	return c.api.Patch(ctx, path, group, nil, nil)
}

// DeleteAgentGroup removes a group.
func (c *AgentAPIClient) DeleteAgentGroup(ctx context.Context, groupName string) error {
	path := fmt.Sprintf("/agents/api/%s/agent-groups/%s", c.clientID, groupName)
	_, err := c.api.Delete(ctx, path, nil)
	return err
}

// ExecuteAgent runs an agent or agent group against a user message and
// returns the raw response payload.
func (c *AgentAPIClient) ExecuteAgent(ctx context.Context, handlerName, agentKind, userID, userMessage string) (map[string]any, error) {
	if userID == "" {
		userID = "not-authorized"
	}
	payload := map[string]any{
		"handlerName":  handlerName,
		"userId":       userID,
		"agentKind":    agentKind,
		"QueryPayload": fmt.Sprintf("{'userMessage': %q}", userMessage),
	}
	var resp map[string]any
	path := fmt.Sprintf("/agents/api/%s/realtime/execute-agents", c.clientID)
	if err := c.api.PostJSON(ctx, path, payload, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
