package repository

import (
	"context"
	"fmt"

	"bookit/internal/model"
	apperrors "bookit/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	FindByID(ctx context.Context, id int) (*model.Booking, error)
	FindByEmail(ctx context.Context, email string) ([]*model.BookingDetail, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error)
}

type BookingRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &BookingRepositoryImpl{
		pool: pool,
	}
}

const bookingColumns = `
	id, booking_id, experience_id, slot_id, user_name, user_email,
	user_phone, number_of_people, total_price, promo_code,
	discount_amount, final_price, created_at
`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.BookingID,
		&booking.ExperienceID,
		&booking.SlotID,
		&booking.UserName,
		&booking.UserEmail,
		&booking.UserPhone,
		&booking.NumberOfPeople,
		&booking.TotalPrice,
		&booking.PromoCode,
		&booking.DiscountAmount,
		&booking.FinalPrice,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, booking *model.Booking) (*model.Booking, error) {
	query := `
		INSERT INTO bookings (
			booking_id, experience_id, slot_id, user_name, user_email,
			user_phone, number_of_people, total_price, promo_code,
			discount_amount, final_price
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + bookingColumns + `
	`

	created, err := scanBooking(tx.QueryRow(ctx, query,
		booking.BookingID, booking.ExperienceID, booking.SlotID,
		booking.UserName, booking.UserEmail, booking.UserPhone,
		booking.NumberOfPeople, booking.TotalPrice, booking.PromoCode,
		booking.DiscountAmount, booking.FinalPrice,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return created, nil
}

func (r *BookingRepositoryImpl) FindByID(ctx context.Context, id int) (*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`

	booking, err := scanBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrBookingNotFound
		}
		return nil, err
	}

	return booking, nil
}

func (r *BookingRepositoryImpl) FindByEmail(ctx context.Context, email string) ([]*model.BookingDetail, error) {
	query := `
		SELECT
			b.id, b.booking_id, b.experience_id, b.slot_id, b.user_name,
			b.user_email, b.user_phone, b.number_of_people, b.total_price,
			b.promo_code, b.discount_amount, b.final_price, b.created_at,
			e.title AS experience_title, e.location, e.image_url,
			s.date, s.time_slot
		FROM bookings b
		JOIN experiences e ON b.experience_id = e.id
		JOIN slots s ON b.slot_id = s.id
		WHERE b.user_email = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]*model.BookingDetail, 0)

	for rows.Next() {
		var detail model.BookingDetail
		err := rows.Scan(
			&detail.ID,
			&detail.BookingID,
			&detail.ExperienceID,
			&detail.SlotID,
			&detail.UserName,
			&detail.UserEmail,
			&detail.UserPhone,
			&detail.NumberOfPeople,
			&detail.TotalPrice,
			&detail.PromoCode,
			&detail.DiscountAmount,
			&detail.FinalPrice,
			&detail.CreatedAt,
			&detail.ExperienceTitle,
			&detail.Location,
			&detail.ImageURL,
			&detail.Date,
			&detail.TimeSlot,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, &detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
