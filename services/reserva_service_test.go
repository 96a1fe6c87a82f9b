package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"hosteldb-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens an isolated in-memory database per test.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Persona{},
		&models.Habitacion{},
		&models.HabitacionAmenity{},
		&models.Reserva{},
		&models.Notificacion{},
		&models.Conversacion{},
		&models.ParticipanteConversacion{},
		&models.Mensaje{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func crearHabitacion(t *testing.T, db *gorm.DB) models.Habitacion {
	t.Helper()
	habitacion := models.Habitacion{Titulo: "Habitación doble", Tipo: "doble", Precio: "45.00"}
	if err := db.Create(&habitacion).Error; err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	return habitacion
}

func crearPersona(t *testing.T, db *gorm.DB, correo string) models.Persona {
	t.Helper()
	persona := models.Persona{
		PrimerNombre:   "Ana",
		PrimerApellido: "García",
		Correo:         correo,
		Contrasena:     "hash",
		Tipo:           models.TipoUsuario,
	}
	if err := db.Create(&persona).Error; err != nil {
		t.Fatalf("failed to create persona: %v", err)
	}
	return persona
}

// fecha builds a date-only string n days from now, so the check-in
// validation against today never trips.
func fecha(dias int) string {
	return time.Now().AddDate(0, 0, dias).Format("2006-01-02")
}

func TestCrearReserva(t *testing.T) {
	db := testDB(t)
	svc := NewReservaService(db)
	habitacion := crearHabitacion(t, db)
	persona := crearPersona(t, db, "ana@example.com")

	reserva, err := svc.Crear(CrearReservaInput{
		HabitacionID: habitacion.ID,
		UsuarioID:    persona.ID,
		CheckIn:      fecha(10),
		CheckOut:     fecha(15),
		Adultos:      2,
		Ninos:        1,
		Precio:       "225.00",
	})
	if err != nil {
		t.Fatalf("Crear() error = %v", err)
	}

	if reserva.Estado != models.EstadoPendiente {
		t.Errorf("Estado = %q, want %q", reserva.Estado, models.EstadoPendiente)
	}
	if reserva.Codigo == "" {
		t.Error("Codigo is empty, want a generated code")
	}
	if reserva.UsuarioNombre != "Ana García" {
		t.Errorf("UsuarioNombre = %q, want fallback from persona", reserva.UsuarioNombre)
	}
	if reserva.Correo != "ana@example.com" {
		t.Errorf("Correo = %q, want fallback from persona", reserva.Correo)
	}
	if reserva.Personas != "2 Adulto(s), 1 Niño(s)" {
		t.Errorf("Personas = %q", reserva.Personas)
	}
}

func TestCrearReservaConflicto(t *testing.T) {
	db := testDB(t)
	svc := NewReservaService(db)
	habitacion := crearHabitacion(t, db)
	persona := crearPersona(t, db, "ana@example.com")

	primera, err := svc.Crear(CrearReservaInput{
		HabitacionID: habitacion.ID,
		UsuarioID:    persona.ID,
		CheckIn:      fecha(10),
		CheckOut:     fecha(15),
	})
	if err != nil {
		t.Fatalf("Crear() first reservation error = %v", err)
	}

	_, err = svc.Crear(CrearReservaInput{
		HabitacionID: habitacion.ID,
		UsuarioID:    persona.ID,
		CheckIn:      fecha(12),
		CheckOut:     fecha(18),
	})
	var conflicto *ConflictoReservaError
	if !errors.As(err, &conflicto) {
		t.Fatalf("Crear() overlapping error = %v, want ConflictoReservaError", err)
	}
	if conflicto.ReservaID != primera.ID {
		t.Errorf("conflicting id = %d, want %d", conflicto.ReservaID, primera.ID)
	}
}

func TestCrearReservaFechasContiguas(t *testing.T) {
	db := testDB(t)
	svc := NewReservaService(db)
	habitacion := crearHabitacion(t, db)
	persona := crearPersona(t, db, "ana@example.com")

	_, err := svc.Crear(CrearReservaInput{
		HabitacionID: habitacion.ID,
		UsuarioID:    persona.ID,
		CheckIn:      fecha(10),
		CheckOut:     fecha(14),
	})
	if err != nil {
		t.Fatalf("Crear() first reservation error = %v", err)
	}

	// El check-in del segundo huésped cae el día del check-out del
	// primero; los intervalos se tocan pero no se solapan.
	_, err = svc.Crear(CrearReservaInput{
		HabitacionID: habitacion.ID,
		UsuarioID:    persona.ID,
		CheckIn:      fecha(14),
		CheckOut:     fecha(17),
	})
	if err != nil {
		t.Fatalf("Crear() back-to-back reservation error = %v, want nil", err)
	}
}

func TestCrearReservaIgnoraEstadosInactivos(t *testing.T) {
	db := testDB(t)
	svc := NewReservaService(db)
	habitacion := crearHabitacion(t, db)
	persona := crearPersona(t, db, "ana@example.com")

	primera, err := svc.Crear(CrearReservaInput{
		HabitacionID: habitacion.ID,
		UsuarioID:    persona.ID,
		CheckIn:      fecha(10),
		CheckOut:     fecha(15),
	})
	if err != nil {
		t.Fatalf("Crear() error = %v", err)
	}
	if _, err := svc.CambiarEstado(primera.ID, models.EstadoCancelada); err != nil {
		t.Fatalf("CambiarEstado() error = %v", err)
	}

	_, err = svc.Crear(CrearReservaInput{
		HabitacionID: habitacion.ID,
		UsuarioID:    persona.ID,
		CheckIn:      fecha(12),
		CheckOut:     fecha(18),
	})
	if err != nil {
		t.Fatalf("Crear() over a cancelled reservation error = %v, want nil", err)
	}
}

func TestCrearReservaValidaciones(t *testing.T) {
	db := testDB(t)
	svc := NewReservaService(db)
	habitacion := crearHabitacion(t, db)
	persona := crearPersona(t, db, "ana@example.com")

	tests := []struct {
		name    string
		input   CrearReservaInput
		wantErr error
	}{
		{
			name: "check-out igual al check-in",
			input: CrearReservaInput{
				HabitacionID: habitacion.ID, UsuarioID: persona.ID,
				CheckIn: fecha(10), CheckOut: fecha(10),
			},
			wantErr: ErrRangoFechasInvalido,
		},
		{
			name: "check-out antes del check-in",
			input: CrearReservaInput{
				HabitacionID: habitacion.ID, UsuarioID: persona.ID,
				CheckIn: fecha(10), CheckOut: fecha(8),
			},
			wantErr: ErrRangoFechasInvalido,
		},
		{
			name: "check-in en el pasado",
			input: CrearReservaInput{
				HabitacionID: habitacion.ID, UsuarioID: persona.ID,
				CheckIn: fecha(-3), CheckOut: fecha(5),
			},
			wantErr: ErrRangoFechasInvalido,
		},
		{
			name: "fecha mal formateada",
			input: CrearReservaInput{
				HabitacionID: habitacion.ID, UsuarioID: persona.ID,
				CheckIn: "10/07/2026", CheckOut: fecha(15),
			},
			wantErr: ErrRangoFechasInvalido,
		},
		{
			name: "habitación inexistente",
			input: CrearReservaInput{
				HabitacionID: 999, UsuarioID: persona.ID,
				CheckIn: fecha(10), CheckOut: fecha(15),
			},
			wantErr: ErrHabitacionNoEncontrada,
		},
		{
			name: "usuario inexistente",
			input: CrearReservaInput{
				HabitacionID: habitacion.ID, UsuarioID: 999,
				CheckIn: fecha(10), CheckOut: fecha(15),
			},
			wantErr: ErrPersonaNoEncontrada,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Crear(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Crear() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVerificarDisponibilidad(t *testing.T) {
	db := testDB(t)
	svc := NewReservaService(db)
	habitacion := crearHabitacion(t, db)
	persona := crearPersona(t, db, "ana@example.com")

	if _, err := svc.Crear(CrearReservaInput{
		HabitacionID: habitacion.ID,
		UsuarioID:    persona.ID,
		CheckIn:      fecha(10),
		CheckOut:     fecha(15),
	}); err != nil {
		t.Fatalf("Crear() error = %v", err)
	}

	libre, _ := ParseFecha(fecha(20))
	finLibre, _ := ParseFecha(fecha(25))
	disp, err := svc.VerificarDisponibilidad(habitacion.ID, libre, finLibre)
	if err != nil {
		t.Fatalf("VerificarDisponibilidad() error = %v", err)
	}
	if !disp.Disponible || len(disp.Conflictos) != 0 {
		t.Errorf("free range: Disponible = %v, Conflictos = %d", disp.Disponible, len(disp.Conflictos))
	}

	ocupado, _ := ParseFecha(fecha(12))
	finOcupado, _ := ParseFecha(fecha(13))
	disp, err = svc.VerificarDisponibilidad(habitacion.ID, ocupado, finOcupado)
	if err != nil {
		t.Fatalf("VerificarDisponibilidad() error = %v", err)
	}
	if disp.Disponible || len(disp.Conflictos) != 1 {
		t.Errorf("taken range: Disponible = %v, Conflictos = %d", disp.Disponible, len(disp.Conflictos))
	}
}

func TestActualizarReserva(t *testing.T) {
	db := testDB(t)
	svc := NewReservaService(db)
	habitacion := crearHabitacion(t, db)
	persona := crearPersona(t, db, "ana@example.com")

	reserva, err := svc.Crear(CrearReservaInput{
		HabitacionID: habitacion.ID,
		UsuarioID:    persona.ID,
		CheckIn:      fecha(10),
		CheckOut:     fecha(15),
	})
	if err != nil {
		t.Fatalf("Crear() error = %v", err)
	}

	// Desplazar las propias fechas no choca consigo misma.
	nuevoIn, nuevoOut := fecha(11), fecha(16)
	actualizada, err := svc.Actualizar(reserva.ID, ActualizarReservaInput{
		CheckIn:  &nuevoIn,
		CheckOut: &nuevoOut,
	})
	if err != nil {
		t.Fatalf("Actualizar() error = %v", err)
	}
	if got := actualizada.CheckIn.Format("2006-01-02"); got != nuevoIn {
		t.Errorf("CheckIn = %s, want %s", got, nuevoIn)
	}

	estado := models.EstadoConfirmada
	actualizada, err = svc.Actualizar(reserva.ID, ActualizarReservaInput{Estado: &estado})
	if err != nil {
		t.Fatalf("Actualizar() estado error = %v", err)
	}
	if actualizada.Estado != models.EstadoConfirmada {
		t.Errorf("Estado = %q, want %q", actualizada.Estado, models.EstadoConfirmada)
	}

	malEstado := models.EstadoReserva("pagada")
	if _, err := svc.Actualizar(reserva.ID, ActualizarReservaInput{Estado: &malEstado}); !errors.Is(err, ErrDatosInvalidos) {
		t.Errorf("Actualizar() unknown estado error = %v, want %v", err, ErrDatosInvalidos)
	}

	if _, err := svc.Actualizar(999, ActualizarReservaInput{Estado: &estado}); !errors.Is(err, ErrReservaNoEncontrada) {
		t.Errorf("Actualizar() missing id error = %v, want %v", err, ErrReservaNoEncontrada)
	}
}

func TestActualizarReservaConflicto(t *testing.T) {
	db := testDB(t)
	svc := NewReservaService(db)
	habitacion := crearHabitacion(t, db)
	persona := crearPersona(t, db, "ana@example.com")

	if _, err := svc.Crear(CrearReservaInput{
		HabitacionID: habitacion.ID,
		UsuarioID:    persona.ID,
		CheckIn:      fecha(10),
		CheckOut:     fecha(15),
	}); err != nil {
		t.Fatalf("Crear() first reservation error = %v", err)
	}
	segunda, err := svc.Crear(CrearReservaInput{
		HabitacionID: habitacion.ID,
		UsuarioID:    persona.ID,
		CheckIn:      fecha(15),
		CheckOut:     fecha(20),
	})
	if err != nil {
		t.Fatalf("Crear() second reservation error = %v", err)
	}

	// Mover la segunda encima de la primera debe fallar.
	nuevoIn := fecha(12)
	_, err = svc.Actualizar(segunda.ID, ActualizarReservaInput{CheckIn: &nuevoIn})
	var conflicto *ConflictoReservaError
	if !errors.As(err, &conflicto) {
		t.Fatalf("Actualizar() overlapping error = %v, want ConflictoReservaError", err)
	}
}

func TestEliminarReserva(t *testing.T) {
	db := testDB(t)
	svc := NewReservaService(db)
	habitacion := crearHabitacion(t, db)
	persona := crearPersona(t, db, "ana@example.com")

	reserva, err := svc.Crear(CrearReservaInput{
		HabitacionID: habitacion.ID,
		UsuarioID:    persona.ID,
		CheckIn:      fecha(10),
		CheckOut:     fecha(15),
	})
	if err != nil {
		t.Fatalf("Crear() error = %v", err)
	}

	if err := svc.Eliminar(reserva.ID); err != nil {
		t.Fatalf("Eliminar() error = %v", err)
	}
	if err := svc.Eliminar(reserva.ID); !errors.Is(err, ErrReservaNoEncontrada) {
		t.Errorf("Eliminar() second call error = %v, want %v", err, ErrReservaNoEncontrada)
	}
	if _, err := svc.ObtenerPorID(reserva.ID); !errors.Is(err, ErrReservaNoEncontrada) {
		t.Errorf("ObtenerPorID() after delete error = %v, want %v", err, ErrReservaNoEncontrada)
	}
}

func TestReservasPorFiltros(t *testing.T) {
	db := testDB(t)
	svc := NewReservaService(db)
	habitacion := crearHabitacion(t, db)
	otra := crearHabitacion(t, db)
	persona := crearPersona(t, db, "ana@example.com")

	if _, err := svc.Crear(CrearReservaInput{
		HabitacionID: habitacion.ID, UsuarioID: persona.ID,
		CheckIn: fecha(10), CheckOut: fecha(15),
	}); err != nil {
		t.Fatalf("Crear() error = %v", err)
	}
	if _, err := svc.Crear(CrearReservaInput{
		HabitacionID: otra.ID, UsuarioID: persona.ID,
		CheckIn: fecha(10), CheckOut: fecha(15),
	}); err != nil {
		t.Fatalf("Crear() error = %v", err)
	}

	porUsuario, err := svc.PorUsuario(persona.ID)
	if err != nil {
		t.Fatalf("PorUsuario() error = %v", err)
	}
	if len(porUsuario) != 2 {
		t.Errorf("PorUsuario() len = %d, want 2", len(porUsuario))
	}

	porHabitacion, err := svc.PorHabitacion(habitacion.ID)
	if err != nil {
		t.Fatalf("PorHabitacion() error = %v", err)
	}
	if len(porHabitacion) != 1 {
		t.Errorf("PorHabitacion() len = %d, want 1", len(porHabitacion))
	}

	pendientes, err := svc.PorEstado(models.EstadoPendiente)
	if err != nil {
		t.Fatalf("PorEstado() error = %v", err)
	}
	if len(pendientes) != 2 {
		t.Errorf("PorEstado(pendiente) len = %d, want 2", len(pendientes))
	}

	if _, err := svc.PorEstado("desconocido"); !errors.Is(err, ErrDatosInvalidos) {
		t.Errorf("PorEstado() unknown estado error = %v, want %v", err, ErrDatosInvalidos)
	}
}
