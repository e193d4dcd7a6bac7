package model

import "time"

type ProductStatistics struct {
	ID        int64     `db:"id" json:"id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	SaleDate  time.Time `db:"sale_date" json:"sale_date"`
	Sold      int64     `db:"sold" json:"sold"`
	Revenue   int64     `db:"revenue" json:"revenue"`
}

type StatisticsByDay struct {
	ID             int64     `db:"id" json:"id"`
	StatisticsDate time.Time `db:"statistics_date" json:"statistics_date"`
	Revenue        int64     `db:"revenue" json:"revenue"`
	NumberOfOrder  int64     `db:"number_of_order" json:"number_of_order"`
}
