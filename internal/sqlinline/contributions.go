package sqlinline

// QApplyContribution is the heart of the ledger: a single guarded statement
// that re-checks the goal against committed state and increments the running
// total atomically. No matching row means the campaign is missing or the
// guard failed; QSelectCampaignFunds disambiguates inside the same
// transaction.
const QApplyContribution = `--sql c6cd30d9-225b-4d8a-9fcc-07a48a47e629
update campaigns
set current_amount = current_amount + $2::bigint,
    updated_at = now()
where id = $1::uuid
  and current_amount + $2::bigint <= goal_amount
returning current_amount;
`

const QSelectCampaignFunds = `--sql 3c29fe0c-1ea5-4c4c-88a2-70340e87fb7f
select goal_amount, current_amount
from campaigns
where id = $1::uuid;
`

const QInsertContribution = `--sql b743e815-9c53-4883-9fff-a629c86b1685
insert into contributions(id, campaign_id, contributor_id, amount, created_at)
values ($1::uuid, $2::uuid, $3::uuid, $4::bigint, now())
returning created_at;
`

const QListContributions = `--sql ed460b8b-255f-4541-a006-3935e89c2f69
select id, campaign_id, contributor_id, amount, created_at
from contributions
where campaign_id = $1::uuid
order by seq asc;
`
