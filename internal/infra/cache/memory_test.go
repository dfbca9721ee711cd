package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestGetDentroDoTTL(t *testing.T) {
	agora := time.Now()
	c := NewMemoryComRelogio(5*time.Minute, 200, func() time.Time { return agora })
	c.Set("eventos:2024-03-12", "valor")

	agora = agora.Add(5 * time.Minute)
	v, ok := c.Get("eventos:2024-03-12")
	if !ok {
		t.Fatalf("esperava acerto dentro do TTL")
	}
	if v.(string) != "valor" {
		t.Fatalf("esperava o valor gravado, veio %v", v)
	}
}

func TestGetExpirado(t *testing.T) {
	agora := time.Now()
	c := NewMemoryComRelogio(5*time.Minute, 200, func() time.Time { return agora })
	c.Set("prop:9001", 1)

	agora = agora.Add(5*time.Minute + time.Second)
	if _, ok := c.Get("prop:9001"); ok {
		t.Fatalf("esperava expiração após o TTL")
	}
	if c.Tamanho() != 0 {
		t.Fatalf("entrada expirada deveria ter sido removida na leitura")
	}
}

func TestChaveInexistente(t *testing.T) {
	c := NewMemory(time.Minute, 10)
	if _, ok := c.Get("nada"); ok {
		t.Fatalf("esperava ausência para chave nunca gravada")
	}
}

func TestDespejoPorOrdemDeInsercao(t *testing.T) {
	c := NewMemory(time.Hour, 200)
	for i := 0; i < 250; i++ {
		c.Set(fmt.Sprintf("chave-%d", i), i)
	}
	if c.Tamanho() != 200 {
		t.Fatalf("esperava exatamente 200 entradas, veio %d", c.Tamanho())
	}
	// as 50 primeiras saíram, em ordem estrita de inserção
	for i := 0; i < 50; i++ {
		if _, ok := c.Get(fmt.Sprintf("chave-%d", i)); ok {
			t.Fatalf("chave-%d deveria ter sido despejada", i)
		}
	}
	for i := 50; i < 250; i++ {
		if _, ok := c.Get(fmt.Sprintf("chave-%d", i)); !ok {
			t.Fatalf("chave-%d não deveria ter sido despejada", i)
		}
	}
}

func TestSetExistenteNaoDespeja(t *testing.T) {
	c := NewMemory(time.Hour, 2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3)
	if c.Tamanho() != 2 {
		t.Fatalf("regravar chave existente não deveria mudar o tamanho")
	}
	v, ok := c.Get("a")
	if !ok || v.(int) != 3 {
		t.Fatalf("esperava o valor regravado")
	}
	// "a" mantém a posição original: a próxima inserção despeja "a"
	c.Set("c", 4)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("esperava que a chave mais antiga saísse primeiro")
	}
	if _, ok := c.Get("b"); !ok {
		t.Fatalf("b ainda deveria estar presente")
	}
}

func TestAcessoConcorrente(t *testing.T) {
	c := NewMemory(time.Minute, 50)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				chave := fmt.Sprintf("chave-%d", i%60)
				c.Set(chave, g)
				c.Get(chave)
			}
		}(g)
	}
	wg.Wait()
	if c.Tamanho() > 50 {
		t.Fatalf("capacidade ultrapassada: %d", c.Tamanho())
	}
}
