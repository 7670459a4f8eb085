// Package studio 实现教学内容工作室的四个动作
package studio

import (
	"fmt"

	"edu-studio/internal/domain/entity"
	"edu-studio/internal/domain/repository"
)

// Agent 角色与其绑定的会话记忆，Memory 为 nil 时无状态
type Agent struct {
	Persona *entity.Persona
	Memory  repository.ConversationMemory
}

// Agents 按角色标识索引的智能体集合，启动后只读
type Agents map[entity.PersonaID]*Agent

// NewAgents 为每个角色创建智能体，SharesMemory 的角色共享同一个 memory 引用
func NewAgents(personas []*entity.Persona, memory repository.ConversationMemory) Agents {
	agents := make(Agents, len(personas))
	for _, p := range personas {
		a := &Agent{Persona: p}
		if p.SharesMemory {
			a.Memory = memory
		}
		agents[p.ID] = a
	}
	return agents
}

// Get 获取指定角色
func (a Agents) Get(id entity.PersonaID) (*Agent, error) {
	agent, ok := a[id]
	if !ok || agent == nil || agent.Persona == nil {
		return nil, fmt.Errorf("persona %s not configured", id)
	}
	return agent, nil
}
