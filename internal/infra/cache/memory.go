package cache

import (
	"sync"
	"time"
)

type entrada struct {
	valor     any
	gravadoEm time.Time
}

// Memory implementa domain.Cache com um mapa limitado em memória.
// A expiração é verificada preguiçosamente na leitura; não há varredura em
// segundo plano. Quando a capacidade estoura, sai a entrada inserida há mais
// tempo (ordem de inserção, não LRU).
type Memory struct {
	mu    sync.Mutex
	ttl   time.Duration
	max   int
	agora func() time.Time
	itens map[string]entrada
	ordem []string
}

// NewMemory cria o cache com TTL e capacidade fixos.
func NewMemory(ttl time.Duration, max int) *Memory {
	return NewMemoryComRelogio(ttl, max, time.Now)
}

// NewMemoryComRelogio permite injetar o relógio, usado nos testes.
func NewMemoryComRelogio(ttl time.Duration, max int, agora func() time.Time) *Memory {
	return &Memory{
		ttl:   ttl,
		max:   max,
		agora: agora,
		itens: make(map[string]entrada, max),
	}
}

// Get devolve o valor da chave, ou nada se ela não existe ou expirou.
// Entradas expiradas são removidas na própria leitura.
func (m *Memory) Get(chave string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.itens[chave]
	if !ok {
		return nil, false
	}
	if m.agora().Sub(e.gravadoEm) > m.ttl {
		delete(m.itens, chave)
		m.removerDaOrdem(chave)
		return nil, false
	}
	return e.valor, true
}

// Set grava o valor com o instante atual. Chaves já presentes mantêm a sua
// posição de inserção original.
func (m *Memory) Set(chave string, valor any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, existe := m.itens[chave]; !existe {
		if len(m.itens) >= m.max {
			m.despejarMaisAntiga()
		}
		m.ordem = append(m.ordem, chave)
	}
	m.itens[chave] = entrada{valor: valor, gravadoEm: m.agora()}
}

// Tamanho devolve o número de entradas vivas no cache.
func (m *Memory) Tamanho() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.itens)
}

func (m *Memory) despejarMaisAntiga() {
	for len(m.ordem) > 0 {
		chave := m.ordem[0]
		m.ordem = m.ordem[1:]
		if _, ok := m.itens[chave]; ok {
			delete(m.itens, chave)
			return
		}
	}
}

func (m *Memory) removerDaOrdem(chave string) {
	for i, c := range m.ordem {
		if c == chave {
			m.ordem = append(m.ordem[:i], m.ordem[i+1:]...)
			return
		}
	}
}
