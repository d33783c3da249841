package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medlyfe/scheduling-service/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	if err := seedDoctors(context.Background(), pool, 50); err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	if err := seedPatients(context.Background(), pool, 2000); err != nil {
		log.Fatalf("seed patients: %v", err)
	}
	if err := seedMedicines(context.Background(), pool, 200); err != nil {
		log.Fatalf("seed medicines: %v", err)
	}
	if err := seedDiseases(context.Background(), pool); err != nil {
		log.Fatalf("seed diseases: %v", err)
	}

	log.Println("seed complete")
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d doctors", count)

	specialties := []string{
		"Dermatology",
		"Cardiology",
		"General Practice",
		"Orthopedics",
		"Endocrinology",
		"Neurology",
		"Pediatrics",
		"Psychiatry",
		"Ophthalmology",
		"ENT",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		id := uuid.New()
		name := gofakeit.Name()
		spec := specialties[gofakeit.Number(0, len(specialties)-1)]

		_, err := tx.Exec(ctx, `
			INSERT INTO doctors (id, name, specialty, created_at, updated_at)
			VALUES ($1, $2, $3, now(), now())
		`, id, name, spec)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("doctors seeded")
	return nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d patients", count)

	const batchSize = 500

	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return err
		}

		for i := offset; i < end; i++ {
			id := uuid.New()
			name := gofakeit.Name()
			email := gofakeit.Email()

			_, err := tx.Exec(ctx, `
				INSERT INTO patients (id, name, email, created_at, updated_at)
				VALUES ($1, $2, $3, now(), now())
			`, id, name, email)
			if err != nil {
				_ = tx.Rollback(ctx)
				return err
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		log.Printf("patients seeded: %d/%d", end, count)
	}

	log.Println("patients seeded")
	return nil
}

func seedMedicines(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d medicines", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		name := gofakeit.AppName() + " " + gofakeit.Word()
		tag := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
		manufacturer := gofakeit.Company()
		composition := gofakeit.Word() + " " + gofakeit.Word()
		price := gofakeit.Price(5, 500)

		var medicineID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO medicines (name, manufacturer, composition, price, search_tag)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (search_tag) DO NOTHING
			RETURNING id
		`, name, manufacturer, composition, price, tag).Scan(&medicineID)
		if err != nil {
			// Duplicate tag, skip its substitutes too.
			continue
		}

		for j := 0; j < gofakeit.Number(1, 4); j++ {
			_, err := tx.Exec(ctx, `
				INSERT INTO substitutes (medicine_id, name, manufacturer, composition, price)
				VALUES ($1, $2, $3, $4, $5)
			`, medicineID, gofakeit.AppName(), gofakeit.Company(), composition, gofakeit.Price(5, 500))
			if err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("medicines seeded")
	return nil
}

// seedDiseases loads a small fixed catalog; random disease names would make
// the symptom matcher useless for manual testing.
func seedDiseases(ctx context.Context, pool *pgxpool.Pool) error {
	catalog := map[string]struct {
		description string
		precautions string
		symptoms    []string
	}{
		"Common Cold": {
			"Viral infection of the upper respiratory tract.",
			"Rest, fluids, avoid close contact with others.",
			[]string{"runny nose", "sneezing", "sore throat", "cough"},
		},
		"Influenza": {
			"Contagious respiratory illness caused by influenza viruses.",
			"Rest, fluids, antiviral medication if prescribed early.",
			[]string{"fever", "cough", "sore throat", "muscle ache", "fatigue"},
		},
		"Migraine": {
			"Recurrent headache disorder with moderate to severe attacks.",
			"Rest in a dark quiet room, stay hydrated, track triggers.",
			[]string{"headache", "nausea", "light sensitivity"},
		},
		"Gastroenteritis": {
			"Inflammation of the stomach and intestines.",
			"Oral rehydration, bland diet, hand hygiene.",
			[]string{"nausea", "vomiting", "diarrhea", "abdominal pain"},
		},
		"Hypertension": {
			"Persistently elevated blood pressure.",
			"Reduce salt intake, regular exercise, monitor blood pressure.",
			[]string{"headache", "dizziness", "blurred vision"},
		},
	}

	log.Printf("seeding %d diseases", len(catalog))

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	symptomIDs := make(map[string]int64)

	for name, d := range catalog {
		var diseaseID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO diseases (name, description, precautions)
			VALUES ($1, $2, $3)
			RETURNING id
		`, name, d.description, d.precautions).Scan(&diseaseID)
		if err != nil {
			return err
		}

		for _, sym := range d.symptoms {
			id, ok := symptomIDs[sym]
			if !ok {
				err := tx.QueryRow(ctx, `
					INSERT INTO symptoms (name)
					VALUES ($1)
					ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
					RETURNING id
				`, sym).Scan(&id)
				if err != nil {
					return err
				}
				symptomIDs[sym] = id
			}

			_, err := tx.Exec(ctx, `
				INSERT INTO disease_symptoms (disease_id, symptom_id)
				VALUES ($1, $2)
			`, diseaseID, id)
			if err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("diseases seeded")
	return nil
}
