package services

import (
	"errors"
	"testing"
)

func TestParticipanteCrear(t *testing.T) {
	db := testDB(t)
	svc := NewParticipanteService(db)
	conversacionID, anaID, _ := armarConversacion(t, db)
	eva := crearPersona(t, db, "eva@example.com")

	if _, err := svc.Crear(conversacionID, eva.ID); err != nil {
		t.Fatalf("Crear() error = %v", err)
	}
	// Duplicar el par es un no-op.
	if _, err := svc.Crear(conversacionID, eva.ID); err != nil {
		t.Fatalf("Crear() repeated error = %v", err)
	}

	if _, err := svc.Crear(999, anaID); !errors.Is(err, ErrConversacionNoEncontrada) {
		t.Errorf("Crear() missing conversation error = %v, want %v", err, ErrConversacionNoEncontrada)
	}
	if _, err := svc.Crear(conversacionID, 999); !errors.Is(err, ErrPersonaNoEncontrada) {
		t.Errorf("Crear() missing persona error = %v, want %v", err, ErrPersonaNoEncontrada)
	}

	total, err := svc.ContarPorConversacion(conversacionID)
	if err != nil {
		t.Fatalf("ContarPorConversacion() error = %v", err)
	}
	if total != 3 {
		t.Errorf("ContarPorConversacion() = %d, want 3", total)
	}
}

func TestParticipaYContadores(t *testing.T) {
	db := testDB(t)
	svc := NewParticipanteService(db)
	conversacionID, anaID, _ := armarConversacion(t, db)
	fuera := crearPersona(t, db, "fuera@example.com")

	participa, err := svc.Participa(conversacionID, anaID)
	if err != nil {
		t.Fatalf("Participa() error = %v", err)
	}
	if !participa {
		t.Error("Participa() = false for a member")
	}

	participa, err = svc.Participa(conversacionID, fuera.ID)
	if err != nil {
		t.Fatalf("Participa() error = %v", err)
	}
	if participa {
		t.Error("Participa() = true for an outsider")
	}

	deAna, err := svc.ContarPorPersona(anaID)
	if err != nil {
		t.Fatalf("ContarPorPersona() error = %v", err)
	}
	if deAna != 1 {
		t.Errorf("ContarPorPersona() = %d, want 1", deAna)
	}
}

func TestReemplazarParticipantes(t *testing.T) {
	db := testDB(t)
	svc := NewParticipanteService(db)
	conversacionID, anaID, luisID := armarConversacion(t, db)
	eva := crearPersona(t, db, "eva@example.com")
	max := crearPersona(t, db, "max@example.com")

	if _, err := svc.ReemplazarTodos(conversacionID, []uint{eva.ID}); !errors.Is(err, ErrDatosInvalidos) {
		t.Errorf("ReemplazarTodos() single participant error = %v, want %v", err, ErrDatosInvalidos)
	}

	nuevos, err := svc.ReemplazarTodos(conversacionID, []uint{eva.ID, max.ID})
	if err != nil {
		t.Fatalf("ReemplazarTodos() error = %v", err)
	}
	if len(nuevos) != 2 {
		t.Fatalf("ReemplazarTodos() len = %d, want 2", len(nuevos))
	}

	for _, antiguo := range []uint{anaID, luisID} {
		participa, err := svc.Participa(conversacionID, antiguo)
		if err != nil {
			t.Fatalf("Participa() error = %v", err)
		}
		if participa {
			t.Errorf("persona %d survived the replace", antiguo)
		}
	}
}

func TestEliminarParticipaciones(t *testing.T) {
	db := testDB(t)
	svc := NewParticipanteService(db)
	conversacionID, anaID, _ := armarConversacion(t, db)

	if err := svc.Eliminar(conversacionID, anaID); err != nil {
		t.Fatalf("Eliminar() error = %v", err)
	}
	if err := svc.Eliminar(conversacionID, anaID); !errors.Is(err, ErrNoParticipa) {
		t.Errorf("Eliminar() second call error = %v, want %v", err, ErrNoParticipa)
	}

	eliminados, err := svc.EliminarTodosPorConversacion(conversacionID)
	if err != nil {
		t.Fatalf("EliminarTodosPorConversacion() error = %v", err)
	}
	if eliminados != 1 {
		t.Errorf("EliminarTodosPorConversacion() = %d, want 1", eliminados)
	}
}

func TestConversacionesComunesIDs(t *testing.T) {
	db := testDB(t)
	svc := NewParticipanteService(db)
	ana := crearPersona(t, db, "ana@example.com")
	luis := crearPersona(t, db, "luis@example.com")
	eva := crearPersona(t, db, "eva@example.com")

	conversaciones := NewConversacionService(db)
	compartida, err := conversaciones.Crear([]uint{ana.ID, luis.ID})
	if err != nil {
		t.Fatalf("Crear() error = %v", err)
	}
	if _, err := conversaciones.Crear([]uint{ana.ID, eva.ID}); err != nil {
		t.Fatalf("Crear() error = %v", err)
	}

	ids, err := svc.ConversacionesComunes(ana.ID, luis.ID)
	if err != nil {
		t.Fatalf("ConversacionesComunes() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != compartida.ID {
		t.Errorf("ConversacionesComunes() = %v, want [%d]", ids, compartida.ID)
	}
}
